package service

import (
	"context"
	"math/big"
	"testing"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeService_LiveFee(t *testing.T) {
	t.Parallel()

	live := entity.BasicFee{Amount: big.NewInt(5000)}
	svc := NewFeeService([]port.FeeStrategy{&stubStrategy{standard: entity.StandardUTXO, live: live}}, logger.NewNop())

	fee, err := svc.CalculateFees(context.Background(), transferOn(entity.Bitcoin))
	require.NoError(t, err)
	assert.Equal(t, live, fee)
}

func TestFeeService_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	def := entity.BasicFee{Amount: big.NewInt(7500)}
	tests := []struct {
		name     string
		strategy *stubStrategy
	}{
		{name: "rpc error", strategy: &stubStrategy{standard: entity.StandardCosmos, liveErr: errRPC, def: def}},
		{name: "missing payload", strategy: &stubStrategy{standard: entity.StandardCosmos, liveErr: entity.ErrEstimationPayloadRequired, def: def}},
		{name: "negative live fee", strategy: &stubStrategy{standard: entity.StandardCosmos, live: entity.BasicFee{Amount: big.NewInt(-1)}, def: def}},
		{name: "nil live fee", strategy: &stubStrategy{standard: entity.StandardCosmos, def: def}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFeeService([]port.FeeStrategy{tt.strategy}, logger.NewNop())
			fee, err := svc.CalculateFees(context.Background(), transferOn(entity.GaiaChain))
			require.NoError(t, err)
			assert.Equal(t, def, fee)
		})
	}
}

func TestFeeService_MissingDefaultYieldsZero(t *testing.T) {
	t.Parallel()

	strategy := &stubStrategy{standard: entity.StandardSui, liveErr: errRPC, defErr: entity.ErrInvalidFee}
	svc := NewFeeService([]port.FeeStrategy{strategy}, logger.NewNop())

	fee, err := svc.CalculateFees(context.Background(), transferOn(entity.Sui))
	require.NoError(t, err)
	assert.Equal(t, entity.BasicFee{Amount: new(big.Int)}, fee)
}

func TestFeeService_UnsupportedStandard(t *testing.T) {
	t.Parallel()

	svc := NewFeeService([]port.FeeStrategy{&stubStrategy{standard: entity.StandardEVM}}, logger.NewNop())

	_, err := svc.CalculateFees(context.Background(), transferOn(entity.Ton))
	require.ErrorIs(t, err, entity.ErrUnsupportedStandard)
}

func TestFeeService_LastRegistrationWins(t *testing.T) {
	t.Parallel()

	first := &stubStrategy{standard: entity.StandardTon, live: entity.BasicFee{Amount: big.NewInt(1)}}
	second := &stubStrategy{standard: entity.StandardTon, live: entity.BasicFee{Amount: big.NewInt(2)}}
	svc := NewFeeService([]port.FeeStrategy{first, second}, logger.NewNop())

	fee, err := svc.CalculateFees(context.Background(), transferOn(entity.Ton))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2), fee.Total())
	assert.Zero(t, first.liveCalled)
}
