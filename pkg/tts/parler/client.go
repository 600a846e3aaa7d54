package parler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to an Indic Parler text-to-speech sidecar. The service answers
// with raw WAV bytes.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Format of the audio the service produces.
const Format = "wav"

type synthesizeRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Synthesize renders text into speech audio.
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	payload, err := json.Marshal(synthesizeRequest{Text: text, Lang: lang})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/synthesize"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts error: status %d, body: %s", resp.StatusCode, string(audio))
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts returned empty audio")
	}

	return audio, nil
}
