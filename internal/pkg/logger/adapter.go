package logger

import "fee_tracker/internal/app/port"

// slogAdapter реализует интерфейс port.Logger, используя глобальные функции пакета logger.
type slogAdapter struct {
	args []any // добавляются в начало каждой записи
}

// NewSlogAdapter creates a port.Logger backed by the global slog logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewSlogAdapterWith creates a port.Logger that prepends args to every record.
func NewSlogAdapterWith(args ...any) port.Logger {
	return &slogAdapter{args: args}
}

// Info логирует информационное сообщение.
func (a *slogAdapter) Info(msg string, args ...any) {
	Info(msg, a.with(args)...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	Debug(msg, a.with(args)...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	Warn(msg, a.with(args)...)
}

// Error логирует сообщение об ошибке.
func (a *slogAdapter) Error(msg string, args ...any) {
	Error(msg, a.with(args)...)
}

func (a *slogAdapter) with(args []any) []any {
	if len(a.args) == 0 {
		return args
	}
	out := make([]any, 0, len(a.args)+len(args))
	out = append(out, a.args...)
	return append(out, args...)
}
