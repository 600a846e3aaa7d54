package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/pkg/llm"
	"ai-assistant-be/pkg/responder"
	"ai-assistant-be/pkg/tts/parler"

	"github.com/patrickmn/go-cache"
)

// ITranslateService translates text through the routed models. Batch results
// always carry one output per input in input order; an item whose translation
// fails falls back to its original text.
type ITranslateService interface {
	responder.Translator
	TranslateOne(ctx context.Context, req *dto.TranslateRequest) (*dto.TranslateResponse, error)
}

type translateService struct {
	router *llm.Router
	tts    *parler.Client
	cache  *cache.Cache
	log    logger.ILogger
}

func NewTranslateService(router *llm.Router, tts *parler.Client, log logger.ILogger) ITranslateService {
	return &translateService{
		router: router,
		tts:    tts,
		cache:  cache.New(constant.TranslationCacheTTL, 2*constant.TranslationCacheTTL),
		log:    log,
	}
}

func cacheKeyFor(targetLang, text string) string {
	return targetLang + "|" + text
}

func (s *translateService) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	translations := make([]string, 0, len(texts))
	for _, text := range texts {
		translations = append(translations, s.translateText(ctx, text, targetLang))
	}

	if len(translations) != len(texts) {
		return nil, responder.NewError("translate", "Translation produced a mismatched result.", nil)
	}
	return translations, nil
}

func (s *translateService) TranslateOne(ctx context.Context, req *dto.TranslateRequest) (*dto.TranslateResponse, error) {
	translated := s.translateText(ctx, req.Text, req.TargetLang)

	resp := &dto.TranslateResponse{
		InputText:      req.Text,
		TranslatedText: translated,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
	}

	if req.TTS && s.tts != nil {
		wav, err := s.tts.Synthesize(ctx, translated, req.TargetLang)
		if err != nil {
			// Audio is an add-on; the translation itself already succeeded.
			s.log.Warn("TranslateService", "TTS for translation failed", map[string]interface{}{
				"target_lang": req.TargetLang,
				"error":       err.Error(),
			})
		} else {
			resp.AudioBase64 = base64.StdEncoding.EncodeToString(wav)
		}
	}

	return resp, nil
}

// translateText translates a single item, consulting the cache first. Any
// model failure falls back to the original text so a batch never loses items.
func (s *translateService) translateText(ctx context.Context, text, targetLang string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	key := cacheKeyFor(targetLang, text)
	if cached, found := s.cache.Get(key); found {
		return cached.(string)
	}

	prompt := fmt.Sprintf(
		"Translate the following text to %s. Reply with only the translation, nothing else.\n\n%s",
		languageName(targetLang), text,
	)
	history := []llm.Message{{Role: constant.ChatMessageRoleUser, Content: prompt}}

	translated, _, err := s.router.Chat(ctx, history, targetLang)
	if err != nil || strings.TrimSpace(translated) == "" {
		details := map[string]interface{}{"target_lang": targetLang}
		if err != nil {
			details["error"] = err.Error()
		}
		s.log.Warn("TranslateService", "Translation failed, keeping original text", details)
		return text
	}

	translated = strings.TrimSpace(translated)
	s.cache.Set(key, translated, cache.DefaultExpiration)
	return translated
}

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"bn": "Bengali",
	"mr": "Marathi",
	"ta": "Tamil",
	"te": "Telugu",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"or": "Odia",
	"pa": "Punjabi",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
