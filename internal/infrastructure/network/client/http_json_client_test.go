package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHTTPClient_GetJSON(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := newRESTServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/flaky": func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) == 1 {
				writeJSON(w, http.StatusBadGateway, `{"error":"upstream"}`)
				return
			}
			assert.Equal(t, "secret", r.Header.Get("project_id"))
			writeJSON(w, http.StatusOK, `{"value":7}`)
		},
	})

	c := newJSONHTTPClient(testLogger(), testOptions(), map[string]string{"project_id": "secret"})

	var out struct {
		Value int `json:"value"`
	}
	require.NoError(t, c.getJSON(context.Background(), srv.URL+"/flaky", &out))
	assert.Equal(t, 7, out.Value)
	assert.Equal(t, int32(2), attempts.Load())

	err := c.getJSON(context.Background(), srv.URL+"/missing", &out)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestJSONHTTPClient_CallRPC(t *testing.T) {
	t.Parallel()

	srv := newFakeRPCServer(t, map[string]rpcHandler{
		"echo": func(params jsoniter.RawMessage) (any, *RPCError) {
			return jsoniter.RawMessage(params), nil
		},
		"boom": func(jsoniter.RawMessage) (any, *RPCError) {
			return nil, &RPCError{Code: -32000, Message: "boom"}
		},
	})
	c := newJSONHTTPClient(testLogger(), testOptions(), nil)

	t.Run("falls back to the next url", func(t *testing.T) {
		t.Parallel()

		var out []string
		err := c.callRPC(context.Background(), []string{"http://127.0.0.1:1", srv.URL}, "echo", []string{"a", "b"}, &out)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, out)
	})

	t.Run("rpc error is returned", func(t *testing.T) {
		t.Parallel()

		err := c.callRPC(context.Background(), []string{srv.URL}, "boom", nil, nil)
		var rpcErr *RPCError
		require.ErrorAs(t, err, &rpcErr)
		assert.Equal(t, -32000, rpcErr.Code)
	})
}
