package resty_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi/backend/resty"
)

func TestAdapter_HeadersAndBody(t *testing.T) {
	t.Parallel()

	var (
		gotHeader http.Header
		gotBody   string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number":12,"title":"bug"}`))
	}))
	defer server.Close()

	adapter := resty.New(ghapi.BasicAuth("octocat", "secret"), resty.WithUserAgent("resty-tests"))

	payload, err := adapter.FromJSON(map[string]string{"title": "bug"})
	require.NoError(t, err)

	req, err := adapter.Build(ghapi.NewRequest(http.MethodPost, server.URL+"/repos/o/r/issues").
		WithHeader("User-Agent", "overridden").
		WithBody(payload))
	require.NoError(t, err)

	resp, err := adapter.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())

	var issue ghapi.Issue
	require.NoError(t, resp.ToJSON(&issue))
	assert.Equal(t, 12, issue.Number)

	assert.JSONEq(t, `{"title":"bug"}`, gotBody)
	assert.Equal(t, "Basic b2N0b2NhdDpzZWNyZXQ=", gotHeader.Get("Authorization"))
	assert.Equal(t, []string{"resty-tests"}, gotHeader.Values("User-Agent"))
	assert.Equal(t, "application/vnd.github.v3+json", gotHeader.Get("Accept"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
}

func TestAdapter_ErrorStatusIsAResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found","documentation_url":"https://docs.github.com"}`))
	}))
	defer server.Close()

	adapter := resty.New(ghapi.NoAuth())

	req, err := adapter.Build(ghapi.NewRequest(http.MethodGet, server.URL))
	require.NoError(t, err)

	resp, err := adapter.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())

	var body ghapi.BasicError
	require.NoError(t, resp.ToJSON(&body))
	assert.Equal(t, "Not Found", body.Message)
}

func TestAdapter_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	adapter := resty.New(ghapi.NoAuth())

	req, err := adapter.Build(ghapi.NewRequest(http.MethodGet, url))
	require.NoError(t, err)

	_, err = adapter.Fetch(context.Background(), req)

	var backendErr *resty.Error
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, ghapi.KindTransport, backendErr.Kind)
}

func TestAdapter_BuildRejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := resty.New(ghapi.NoAuth()).Build(ghapi.NewRequest(http.MethodGet, "http://[::1"))
	require.Error(t, err)
}

func TestAdapter_Unimplemented(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	adapter := resty.New(ghapi.NoAuth())

	req, err := adapter.Build(ghapi.NewRequest(http.MethodGet, server.URL))
	require.NoError(t, err)

	_, err = adapter.FetchAsync(context.Background(), req).Await(context.Background())

	var backendErr *resty.Error
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, ghapi.KindUnimplemented, backendErr.Kind)

	resp, err := adapter.Fetch(context.Background(), req)
	require.NoError(t, err)

	var v map[string]any
	require.ErrorIs(t, resp.ToJSONAsync(context.Background(), &v), ghapi.ErrUnimplemented)
	require.NoError(t, resp.ToJSON(&v))
	require.ErrorIs(t, resp.ToJSON(&v), ghapi.ErrBodyConsumed)
}
