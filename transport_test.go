package sdk_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	sdk "github.com/xataconnect/sdk"
)

func TestHTTPCall(t *testing.T) {
	t.Parallel()

	var gotAuth, gotContentType, gotPath string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"records":[]}`))
	}))
	defer server.Close()

	runtime := sdk.RuntimeConfig{
		APIKey: "key-1",
		DBURL:  server.URL + "/db/app",
		Branch: "main",
	}
	call := sdk.HTTPCall(runtime, server.Client())

	resp, err := call("POST", "/tables/Users/query", "application/json", []byte(`{"filter":{}}`))
	require.NoError(t, err)
	require.True(t, resp.IsSuccess())
	require.Equal(t, `{"records":[]}`, string(resp.Body))

	require.Equal(t, "Bearer key-1", gotAuth)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, "/db/app:main/tables/Users/query", gotPath)
	require.Equal(t, `{"filter":{}}`, string(gotBody))
}

func TestHTTPCall_AbsoluteURLBypassesBase(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("img"))
	}))
	defer server.Close()

	// No database URL resolved; absolute targets must still work.
	call := sdk.HTTPCall(sdk.RuntimeConfig{APIKey: "key-1"}, server.Client())

	resp, err := call("GET", server.URL+"/transform/rotate=90/pic.png", "", nil)
	require.NoError(t, err)
	require.Equal(t, "img", string(resp.Body))
	require.Equal(t, "/transform/rotate=90/pic.png", gotPath)
}

func TestHTTPCall_RelativePathWithoutDBURL(t *testing.T) {
	t.Parallel()

	call := sdk.HTTPCall(sdk.RuntimeConfig{APIKey: "key-1"}, nil)

	_, err := call("GET", "/tables/Users/data/rec_1", "", nil)
	require.ErrorIs(t, err, sdk.ErrNoDatabaseURL)
}

func TestHTTPCall_FailureEnvelopePreserved(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"table not found"}`))
	}))
	defer server.Close()

	runtime := sdk.RuntimeConfig{APIKey: "key-1", DBURL: server.URL + "/db/app", Branch: "main"}
	call := sdk.HTTPCall(runtime, server.Client())

	// The transport reports the exchange; wrapping into ServerError is the
	// capability clients' job.
	resp, err := call("GET", "/tables/Missing/data/rec_1", "", nil)
	require.NoError(t, err)
	require.False(t, resp.IsSuccess())
	require.Equal(t, 404, resp.StatusCode)
	require.Equal(t, "table not found", resp.ServerMessage())
}
