package profile

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, srv *httptest.Server, path string) int {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRegisterHandlersDefaultsToAll(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	assert.Equal(t, http.StatusOK, get(t, srv, "/debug/pprof/"))
	assert.Equal(t, http.StatusOK, get(t, srv, "/debug/pprof/cmdline"))
	assert.Equal(t, http.StatusOK, get(t, srv, "/debug/pprof/symbol"))
}

func TestRegisterHandlersSelective(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux, WithCmdline())
	srv := httptest.NewServer(mux)
	defer srv.Close()

	assert.Equal(t, http.StatusOK, get(t, srv, "/debug/pprof/cmdline"))
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/debug/pprof/"))
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/debug/pprof/symbol"))
}
