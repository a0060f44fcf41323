package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewq/internal/interview"
)

func TestGenerate_Success(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"questions":[{"question":"Q1","answer":"A1","difficulty":"Hard","followUp":"F1"}]}`))
	}))
	defer ts.Close()

	qs, err := New(ts.URL+"/").Generate(context.Background(), interview.GenerationRequest{
		Role:  "Platform Engineer",
		Level: "Senior",
		Count: interview.CountOf(1),
	})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Q1", qs[0].Question)
	assert.Equal(t, interview.DifficultyHard, qs[0].Difficulty)

	assert.Equal(t, "Platform Engineer", got["role"])
	assert.Equal(t, float64(1), got["count"])
	_, hasTopic := got["topic"]
	assert.False(t, hasTopic, "empty topic is omitted")
}

func TestGenerate_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"Too many requests. Please wait a minute before trying again."}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).Generate(context.Background(), interview.GenerationRequest{Role: "r", Level: "l"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, "Too many requests. Please wait a minute before trying again.", apiErr.Message)
}

func TestGenerate_NonJSONReply(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL).Generate(context.Background(), interview.GenerationRequest{Role: "r", Level: "l"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
}
