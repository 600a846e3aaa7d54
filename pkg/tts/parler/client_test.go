package parler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/synthesize", r.URL.Path)

		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "namaste", req["text"])
		assert.Equal(t, "hi", req["lang"])

		w.Write([]byte("RIFFfakewav"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	audio, err := client.Synthesize(context.Background(), "namaste", "hi")
	assert.NoError(t, err)
	assert.Equal(t, []byte("RIFFfakewav"), audio)
}

func TestSynthesizeEmptyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Synthesize(context.Background(), "hello", "en")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty audio")
}

func TestSynthesizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad language", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Synthesize(context.Background(), "hello", "xx")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
