package generation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReply(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestGenerate(t *testing.T) {
	params := Params{
		Age:         "30s",
		Gender:      "female",
		Procedure:   "rhinoplasty",
		Reason:      "long-standing insecurity",
		ContentType: ContentPersonal,
	}

	t.Run("happy path", func(t *testing.T) {
		var gotAuth string
		var gotReq chatRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			w.Write(chatReply(t, `{"title": "My nose story", "content": "It took a year.", "tags": ["#Rhinoplasty", " Recovery ", ""]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key-123", "test-model", 5*time.Second)
		result, err := client.Generate(context.Background(), params)
		require.NoError(t, err)

		assert.Equal(t, "Bearer key-123", gotAuth)
		assert.Equal(t, "test-model", gotReq.Model)
		require.Len(t, gotReq.Messages, 2)
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Contains(t, gotReq.Messages[1].Content, "rhinoplasty")

		assert.Equal(t, "My nose story", result.Title)
		assert.Equal(t, "It took a year.", result.Content)
		assert.Equal(t, []string{"rhinoplasty", "recovery"}, result.Tags)
	})

	t.Run("markdown fences are stripped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(chatReply(t, "```json\n{\"title\": \"T\", \"content\": \"C\", \"tags\": []}\n```"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key", "m", 5*time.Second)
		result, err := client.Generate(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, "T", result.Title)
	})

	t.Run("upstream error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key", "m", 5*time.Second)
		_, err := client.Generate(context.Background(), params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key", "m", 5*time.Second)
		_, err := client.Generate(context.Background(), params)
		assert.Error(t, err)
	})

	t.Run("payload missing title", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(chatReply(t, `{"title": "", "content": "body", "tags": []}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key", "m", 5*time.Second)
		_, err := client.Generate(context.Background(), params)
		assert.Error(t, err)
	})

	t.Run("payload is not JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(chatReply(t, "Sorry, I cannot do that."))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key", "m", 5*time.Second)
		_, err := client.Generate(context.Background(), params)
		assert.Error(t, err)
	})

	t.Run("context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The server only watches for client disconnects once the request
			// body is consumed, so drain it or Close deadlocks.
			io.Copy(io.Discard, r.Body)
			<-r.Context().Done()
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key", "m", time.Minute)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.Generate(ctx, params)
		require.Error(t, err)
	})

	t.Run("missing key", func(t *testing.T) {
		client := NewClient("http://unused", "", "m", time.Second)
		assert.False(t, client.IsAvailable())
		_, err := client.Generate(context.Background(), params)
		assert.Error(t, err)
	})
}

func TestTopicFocus(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(chatReply(t, `{"title": "T", "content": "C", "tags": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "m", 5*time.Second)
	_, err := client.Generate(context.Background(), Params{
		Procedure:   "botox",
		ContentType: ContentEducational,
		Topic:       "aftercare mistakes",
	})
	require.NoError(t, err)
	assert.Contains(t, gotReq.Messages[1].Content, "aftercare mistakes")
	assert.Contains(t, gotReq.Messages[1].Content, "educational")
}
