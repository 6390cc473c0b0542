package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiOK(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{map[string]any{"text": text}},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestGeminiClientGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		geminiOK("world")(w, r)
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "test-key")
	text, err := client.Generate(context.Background(), "gemini-2.0-flash", "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", text)
}

func TestGeminiClientQuotaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "k")
	_, err := client.Generate(context.Background(), "gemini-2.0-pro", "x")
	require.Error(t, err)

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 429, be.StatusCode)
	assert.True(t, errors.Is(err, ErrQuotaExhausted))
}

func TestGeminiClientBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"model not found","status":"NOT_FOUND"}}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "k")
	_, err := client.Generate(context.Background(), "no-such-model", "x")

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "no-such-model", be.Backend)
	assert.Equal(t, "NOT_FOUND", be.Status)
	assert.False(t, errors.Is(err, ErrQuotaExhausted))
}

func TestGeminiClientEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "k")
	_, err := client.Generate(context.Background(), "gemini-2.0-flash", "x")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiClientUnreachable(t *testing.T) {
	client := NewGeminiClient("http://127.0.0.1:1", "k") // nothing listening
	_, err := client.Generate(context.Background(), "gemini-2.0-flash", "x")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestGeminiClientJoinsParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"a"},{"text":"b"}]}}]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "k")
	text, err := client.Generate(context.Background(), "gemini-2.0-flash", "x")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", text)
}
