package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

type rpcHandler func(params jsoniter.RawMessage) (any, *RPCError)

type rpcCall struct {
	Method string
	Params jsoniter.RawMessage
}

// fakeRPCServer answers JSON-RPC 2.0 requests from a method table.
type fakeRPCServer struct {
	*httptest.Server
	mu    sync.Mutex
	calls []rpcCall
}

func newFakeRPCServer(t *testing.T, handlers map[string]rpcHandler) *fakeRPCServer {
	t.Helper()
	s := &fakeRPCServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req struct {
			ID     jsoniter.RawMessage `json:"id"`
			Method string              `json:"method"`
			Params jsoniter.RawMessage `json:"params"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.calls = append(s.calls, rpcCall{Method: req.Method, Params: req.Params})
		s.mu.Unlock()

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		h, ok := handlers[req.Method]
		if !ok {
			resp["error"] = RPCError{Code: -32601, Message: "method not found: " + req.Method}
		} else if result, rpcErr := h(req.Params); rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		out, _ := json.Marshal(resp)
		_, _ = w.Write(out)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *fakeRPCServer) methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Method
	}
	return out
}

// newRESTServer serves fixed responses by request path.
func newRESTServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func testOptions() Options {
	return Options{Timeout: 2 * time.Second, RetryCount: 2, RetryWait: time.Millisecond}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
