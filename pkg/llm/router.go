package llm

import (
	"context"
	"log"
	"strings"
)

// Tier names returned by ChooseTier.
const (
	TierLight = "light"
	TierHeavy = "heavy"
)

// Languages the light model handles well enough to be worth the cheaper call.
var indicLangs = map[string]bool{
	"hi": true, "bn": true, "mr": true, "ta": true, "te": true,
	"gu": true, "kn": true, "ml": true, "or": true, "pa": true,
}

// Prompts that usually need the bigger model regardless of length.
var heavyKeywords = []string{
	"step by step",
	"detailed",
	"detail",
	"explain",
	"code",
	"algorithm",
	"complex",
	"advanced",
}

const heavyLengthThreshold = 300

// ChooseTier picks between the light and heavy model for one user text.
// Long texts and heavy keywords always go heavy; short Indic-language text
// goes light; everything else defaults to heavy.
func ChooseTier(userText, langCode string) string {
	if len([]rune(userText)) > heavyLengthThreshold {
		return TierHeavy
	}

	textLower := strings.ToLower(userText)
	for _, keyword := range heavyKeywords {
		if strings.Contains(textLower, keyword) {
			return TierHeavy
		}
	}

	if indicLangs[langCode] {
		return TierLight
	}

	return TierHeavy
}

// Router fronts a light and a heavy provider. A failed light call falls back
// to the heavy provider exactly once; a failed heavy call is terminal.
type Router struct {
	light LLMProvider
	heavy LLMProvider
}

func NewRouter(light, heavy LLMProvider) *Router {
	return &Router{light: light, heavy: heavy}
}

// Chat routes one exchange and reports which tier actually produced the reply.
// The last history entry is assumed to be the current user text.
func (r *Router) Chat(ctx context.Context, history []Message, langCode string, options ...Option) (string, string, error) {
	userText := ""
	if len(history) > 0 {
		userText = history[len(history)-1].Content
	}

	// Clients that cannot name the language send "auto" or nothing; routing
	// needs a real code, so detect one from the text itself.
	if langCode == "" || langCode == "auto" {
		langCode = DetectLanguage(userText)
	}

	tier := ChooseTier(userText, langCode)
	if tier == TierLight && r.light != nil {
		reply, err := r.light.Chat(ctx, history, options...)
		if err == nil {
			return reply, TierLight, nil
		}
		log.Printf("[WARN] light model failed, falling back to heavy: %v", err)
	}

	reply, err := r.heavy.Chat(ctx, history, options...)
	if err != nil {
		return "", "", err
	}
	return reply, TierHeavy, nil
}
