package llm

import "github.com/abadojack/whatlanggo"

// DetectLanguage guesses the ISO 639-1 code of a text. Unrecognized or empty
// input falls back to "en".
func DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if code := info.Lang.Iso6391(); code != "" {
		return code
	}
	return "en"
}
