package reflection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatClient_Reflect(t *testing.T) {
	tests := []struct {
		name       string
		entry      string
		serverResp func(t *testing.T, w http.ResponseWriter, r *http.Request)
		want       string
		wantErr    bool
	}{
		{
			name:  "successful reflection",
			entry: "  Long walk by the sea today.  ",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var req ChatRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "test-model", req.Model)
				require.Len(t, req.Messages, 2)
				assert.Equal(t, "system", req.Messages[0].Role)
				assert.Equal(t, "Long walk by the sea today.", req.Messages[1].Content)

				_ = json.NewEncoder(w).Encode(ChatResponse{
					ID:      "c1",
					Choices: []ChatChoice{{Message: ChatMessage{Role: "assistant", Content: " What did the sea sound like? "}}},
				})
			},
			want: "What did the sea sound like?",
		},
		{
			name:  "no choices returned",
			entry: "text",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(ChatResponse{ID: "c2"})
			},
			wantErr: true,
		},
		{
			name:  "bad status",
			entry: "text",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				http.Error(w, "overloaded", http.StatusServiceUnavailable)
			},
			wantErr: true,
		},
		{
			name:  "invalid json",
			entry: "text",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.serverResp(t, w, r)
			}))
			defer ts.Close()

			c := NewChatClient(ts.URL+"/", "test-key", "test-model")
			got, err := c.Reflect(context.Background(), tt.entry)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChatClient_EmptyEntry(t *testing.T) {
	c := NewChatClient("http://127.0.0.1:0", "", "m")
	_, err := c.Reflect(context.Background(), " \n\t")
	assert.ErrorIs(t, err, ErrEmptyEntry)
}

func TestNew_Providers(t *testing.T) {
	r, err := New("", "http://x", "", "m")
	require.NoError(t, err)
	assert.IsType(t, &ChatClient{}, r)

	r, err = New("Anthropic", "", "k", "m")
	require.NoError(t, err)
	assert.IsType(t, &AnthropicClient{}, r)

	_, err = New("carrier-pigeon", "", "", "")
	assert.Error(t, err)
}
