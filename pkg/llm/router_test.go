package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestChooseTier(t *testing.T) {
	tests := []struct {
		name string
		text string
		lang string
		want string
	}{
		{
			name: "short english text defaults to heavy",
			text: "Hello there",
			lang: "en",
			want: TierHeavy,
		},
		{
			name: "short hindi text goes light",
			text: "नमस्ते, आप कैसे हैं?",
			lang: "hi",
			want: TierLight,
		},
		{
			name: "long text always heavy",
			text: strings.Repeat("क", 301),
			lang: "hi",
			want: TierHeavy,
		},
		{
			name: "heavy keyword overrides indic routing",
			text: "explain this in hindi",
			lang: "ta",
			want: TierHeavy,
		},
		{
			name: "keyword match is case insensitive",
			text: "Write CODE for me",
			lang: "bn",
			want: TierHeavy,
		},
		{
			name: "exactly at threshold stays light for indic",
			text: strings.Repeat("a", 300),
			lang: "ml",
			want: TierLight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseTier(tt.text, tt.lang); got != tt.want {
				t.Errorf("ChooseTier(%q, %q) = %q, want %q", tt.text, tt.lang, got, tt.want)
			}
		})
	}
}

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return s.Chat(ctx, []Message{{Role: "user", Content: prompt}})
}

func TestRouterFallback(t *testing.T) {
	light := &stubProvider{err: errors.New("model not loaded")}
	heavy := &stubProvider{reply: "heavy says hi"}
	r := NewRouter(light, heavy)

	history := []Message{{Role: "user", Content: "नमस्ते"}}
	reply, tier, err := r.Chat(context.Background(), history, "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "heavy says hi" || tier != TierHeavy {
		t.Errorf("got (%q, %q), want fallback to heavy", reply, tier)
	}
	if light.calls != 1 || heavy.calls != 1 {
		t.Errorf("calls light=%d heavy=%d, want one each", light.calls, heavy.calls)
	}
}

func TestRouterHeavyFailureIsTerminal(t *testing.T) {
	heavy := &stubProvider{err: errors.New("connection refused")}
	r := NewRouter(nil, heavy)

	_, _, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "explain quantum computing"}}, "en")
	if err == nil {
		t.Fatal("expected error when heavy tier fails")
	}
	if heavy.calls != 1 {
		t.Errorf("heavy calls = %d, want exactly 1 (no retry)", heavy.calls)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "hindi",
			text: "नमस्ते, आप कैसे हैं? मुझे आज मौसम के बारे में बताइए",
			want: "hi",
		},
		{
			name: "english",
			text: "The quick brown fox jumps over the lazy dog",
			want: "en",
		},
		{
			name: "empty falls back to english",
			text: "",
			want: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestChatDetectsLanguageForAuto(t *testing.T) {
	light := &stubProvider{reply: "ठीक है"}
	heavy := &stubProvider{reply: "ok"}
	r := NewRouter(light, heavy)

	history := []Message{{Role: "user", Content: "नमस्ते, आप कैसे हैं? मुझे आज मौसम के बारे में बताइए"}}
	reply, tier, err := r.Chat(context.Background(), history, "auto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "ठीक है" || tier != TierLight {
		t.Errorf("got (%q, %q), want light tier for detected indic text", reply, tier)
	}
	if heavy.calls != 0 {
		t.Errorf("heavy called %d times, want 0", heavy.calls)
	}
}

func TestRouterLightSuccess(t *testing.T) {
	light := &stubProvider{reply: "हाँ"}
	heavy := &stubProvider{reply: "yes"}
	r := NewRouter(light, heavy)

	reply, tier, err := r.Chat(context.Background(), []Message{{Role: "user", Content: "क्या?"}}, "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "हाँ" || tier != TierLight {
		t.Errorf("got (%q, %q), want light reply", reply, tier)
	}
	if heavy.calls != 0 {
		t.Errorf("heavy called %d times, want 0", heavy.calls)
	}
}
