package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	fichttp "github.com/fivetwenty-io/fic-client/internal/http"
	"github.com/fivetwenty-io/fic-client/pkg/fic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCredentials = fichttp.Credentials{APIUID: "uid-1", APIKey: "key-1"}

func TestClientInjectsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/fatture/lista", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "uid-1", body["api_uid"])
		assert.Equal(t, "key-1", body["api_key"])
		assert.Equal(t, "2026", body["anno"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials)

	resp, err := client.Request(context.Background(), "POST", "fatture/lista", fic.Wire{"anno": "2026"})
	require.NoError(t, err)
	assert.True(t, resp.Bool("success"))
}

func TestClientDoesNotMutateCallerBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials)

	body := fic.Wire{"anno": "2026"}
	_, err := client.Request(context.Background(), "POST", "fatture/lista", body)
	require.NoError(t, err)

	assert.Equal(t, fic.Wire{"anno": "2026"}, body)
}

func TestClientDecodesNumbersAsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"numero_pagine": 3, "importo_totale": 122.10}`))
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials)

	resp, err := client.Request(context.Background(), "POST", "fatture/lista", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Int("numero_pagine"))
	// The textual form is preserved, no float64 round trip.
	assert.Equal(t, "122.10", resp.String("importo_totale"))
}

func TestClientBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"down"}`))
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials)

	_, err := client.Request(context.Background(), "POST", "fatture/lista", nil)
	require.Error(t, err)

	var badResponse *fic.BadResponseError
	require.ErrorAs(t, err, &badResponse)
	assert.Equal(t, http.StatusServiceUnavailable, badResponse.StatusCode)
	assert.Equal(t, "fatture/lista", badResponse.Path)
}

func TestClientDoesNotRetryOnServerError(t *testing.T) {
	var hits int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	// Even with retries enabled a received status must be delivered, not
	// replayed: the API bills per mutation.
	client := fichttp.NewClient(server.URL, testCredentials,
		fichttp.WithRetryConfig(2, time.Millisecond, time.Millisecond))

	_, err := client.Request(context.Background(), "POST", "fatture/nuovo", nil)

	var badResponse *fic.BadResponseError
	require.ErrorAs(t, err, &badResponse)
	assert.Equal(t, http.StatusInternalServerError, badResponse.StatusCode)
	assert.Equal(t, 1, hits)
}

func TestClientNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials)

	_, err := client.Request(context.Background(), "POST", "fatture/lista", nil)
	require.Error(t, err)

	var badResponse *fic.BadResponseError
	require.ErrorAs(t, err, &badResponse)
	assert.Equal(t, http.StatusOK, badResponse.StatusCode)
	assert.Contains(t, badResponse.ContentType, "text/html")
	assert.Equal(t, []byte("<html>maintenance</html>"), badResponse.Body)
}

func TestClientJSONContentTypeWithCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials)

	resp, err := client.Request(context.Background(), "POST", "fatture/lista", nil)
	require.NoError(t, err)
	assert.True(t, resp.Bool("success"))
}

func TestClientApplicationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "documento non trovato", "error_code": 4000}`))
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials)

	_, err := client.Request(context.Background(), "POST", "fatture/dettagli", nil)
	require.Error(t, err)

	var requestError *fic.RequestError
	require.ErrorAs(t, err, &requestError)
	assert.Equal(t, fic.ErrorCodeNotFound, requestError.Code)
	assert.Equal(t, fic.KindNotFound, requestError.Kind)
	assert.Equal(t, "documento non trovato", requestError.Message)
	assert.True(t, fic.IsNotFound(err))
}

func TestClientUnknownErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "qualcosa", "error_code": 9999}`))
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials)

	_, err := client.Request(context.Background(), "POST", "fatture/lista", nil)
	require.Error(t, err)

	var requestError *fic.RequestError
	require.ErrorAs(t, err, &requestError)
	assert.Equal(t, fic.KindRequestError, requestError.Kind)
}

func TestClientUndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials)

	_, err := client.Request(context.Background(), "POST", "fatture/lista", nil)
	require.ErrorIs(t, err, fic.ErrInvalidJSON)
}

func TestClientUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "my-agent/2.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := fichttp.NewClient(server.URL, testCredentials, fichttp.WithUserAgent("my-agent/2.0"))

	_, err := client.Request(context.Background(), "POST", "fatture/lista", nil)
	require.NoError(t, err)
}
