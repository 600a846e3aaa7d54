package service

import (
	"context"
	"errors"
	"testing"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

// countingProvider answers every prompt with a fixed prefix on the original
// text and counts how often it is called.
type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return "T:" + history[len(history)-1].Content, nil
}

func (p *countingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

func newTranslateFixture(provider llm.LLMProvider) ITranslateService {
	return NewTranslateService(llm.NewRouter(nil, provider), nil, nopLogger{})
}

func TestTranslateOneOutputPerInput(t *testing.T) {
	svc := newTranslateFixture(&countingProvider{})

	inputs := []string{"hello", "how are you", "goodbye"}
	out, err := svc.Translate(context.Background(), inputs, "hi")
	assert.NoError(t, err)
	assert.Len(t, out, len(inputs))
	for _, translated := range out {
		assert.NotEmpty(t, translated)
	}
}

func TestTranslateFailedItemKeepsOriginal(t *testing.T) {
	svc := newTranslateFixture(&countingProvider{err: errors.New("model down")})

	inputs := []string{"hello", "goodbye"}
	out, err := svc.Translate(context.Background(), inputs, "hi")
	assert.NoError(t, err)
	assert.Equal(t, inputs, out)
}

func TestTranslateEmptyItemPassesThrough(t *testing.T) {
	provider := &countingProvider{}
	svc := newTranslateFixture(provider)

	out, err := svc.Translate(context.Background(), []string{"", "  "}, "hi")
	assert.NoError(t, err)
	assert.Equal(t, []string{"", "  "}, out)
	assert.Zero(t, provider.calls)
}

func TestTranslateCachesRepeats(t *testing.T) {
	provider := &countingProvider{}
	svc := newTranslateFixture(provider)

	_, err := svc.Translate(context.Background(), []string{"hello"}, "hi")
	assert.NoError(t, err)
	_, err = svc.Translate(context.Background(), []string{"hello"}, "hi")
	assert.NoError(t, err)
	assert.Equal(t, 1, provider.calls)

	// A different target language is a different cache entry.
	_, err = svc.Translate(context.Background(), []string{"hello"}, "ta")
	assert.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestTranslateOneWithoutTTS(t *testing.T) {
	svc := newTranslateFixture(&countingProvider{})

	res, err := svc.TranslateOne(context.Background(), &dto.TranslateRequest{
		Text:       "hello",
		SourceLang: "en",
		TargetLang: "hi",
		TTS:        false,
	})
	assert.NoError(t, err)
	assert.Equal(t, "hello", res.InputText)
	assert.NotEmpty(t, res.TranslatedText)
	assert.Empty(t, res.AudioBase64)
}
