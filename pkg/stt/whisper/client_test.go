package whisper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transcribe", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("audio")
		assert.NoError(t, err)
		assert.Equal(t, "input.wav", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "namaste", "lang": "hi"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	tr, err := client.Transcribe(context.Background(), []byte{1, 2, 3}, "input.wav")
	assert.NoError(t, err)
	assert.Equal(t, "namaste", tr.Text)
	assert.Equal(t, "hi", tr.Lang)
}

func TestTranscribeDefaultsLang(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "hello"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	tr, err := client.Transcribe(context.Background(), []byte{1}, "a.wav")
	assert.NoError(t, err)
	assert.Equal(t, "en", tr.Lang)
}

func TestTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Transcribe(context.Background(), []byte{1}, "a.wav")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
