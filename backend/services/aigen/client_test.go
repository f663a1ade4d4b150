package aigen

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/backend/config"
)

func TestCleanJSON(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"plain":          {`[{"title":"a"}]`, `[{"title":"a"}]`},
		"fenced":         {"```json\n[{\"title\":\"a\"}]\n```", `[{"title":"a"}]`},
		"fenced no lang": {"```\n{\"title\":\"a\"}\n```", `{"title":"a"}`},
		"leading prose":  {"Here you go:\n[{\"title\":\"a\"}]", `[{"title":"a"}]`},
		"trailing prose": {"[{\"title\":\"a\"}]\nLet me know!", `[{"title":"a"}]`},
		"no json at all": {"sorry, I cannot help", "sorry, I cannot help"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanJSON(tc.in))
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{AIEndpoint: srv.URL, AIAPIKey: "test-key", AIModel: "test-model"}
	return NewClient(cfg, log.New(os.Stderr, "", 0))
}

func TestGenerateModulesParsesFencedOutput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		content := "```json\n" +
			`[{"title":"Security Basics","description":"Intro","content":"..."},` +
			`{"title":"Phishing","description":"Spotting phish","content":"..."}]` +
			"\n```"
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	})

	drafts, err := client.GenerateModules(context.Background(), "Security Onboarding", "security", 2)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Security Basics", drafts[0].Title)
	assert.Equal(t, "Phishing", drafts[1].Title)
}

func TestGenerateModulesUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.GenerateModules(context.Background(), "Course", "topic", 3)
	assert.Error(t, err)
}

func TestGenerateModulesGarbageOutput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "I'd be happy to help!"}},
			},
		})
	})

	_, err := client.GenerateModules(context.Background(), "Course", "topic", 3)
	assert.Error(t, err)
}
