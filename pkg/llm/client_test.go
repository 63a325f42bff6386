package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seyone-academy-go/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.LLMConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/v1beta/",
		Model:      "gemini-test",
		Generation: config.LLMGenerationConfig{Temperature: 0.7, TopP: 0.9},
	}
	return NewClientWithHTTP(cfg, srv.Client()), srv
}

func TestGenerateReply_RequestShape(t *testing.T) {
	var got map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Start with "},{"text":"Basic Coding."}]}}]}`))
	})

	reply, err := client.GenerateReply(context.Background(), GenerateRequest{
		SystemInstruction: "be helpful",
		History:           []Message{{Role: "model", Content: "Welcome"}},
		Message:           "I am new",
	})
	require.NoError(t, err)
	assert.Equal(t, "Start with Basic Coding.", reply)

	contents := got["contents"].([]interface{})
	require.Len(t, contents, 2)
	last := contents[1].(map[string]interface{})
	assert.Equal(t, "user", last["role"])
	assert.Equal(t, "I am new", last["parts"].([]interface{})[0].(map[string]interface{})["text"])

	gen := got["generationConfig"].(map[string]interface{})
	assert.Equal(t, 0.7, gen["temperature"])
	assert.Equal(t, 0.9, gen["topP"])
	assert.NotContains(t, gen, "maxOutputTokens")
	assert.Contains(t, got, "systemInstruction")
}

func TestGenerateReply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "non-200", status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "bad json", status: http.StatusOK, body: `not json`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`, wantErr: ErrEmptyReply},
		{name: "blank text", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`, wantErr: ErrEmptyReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.GenerateReply(context.Background(), GenerateRequest{Message: "hi"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGenerateReply_MissingCredential(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	client := NewClientWithHTTP(config.LLMConfig{BaseURL: srv.URL, Model: "m"}, srv.Client())
	_, err := client.GenerateReply(context.Background(), GenerateRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.False(t, called)
}
