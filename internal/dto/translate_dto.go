package dto

type TranslateRequest struct {
	Text       string `json:"text" validate:"required"`
	SourceLang string `json:"source_lang" validate:"required"`
	TargetLang string `json:"target_lang" validate:"required"`
	TTS        bool   `json:"tts"`
}

type TranslateResponse struct {
	InputText      string `json:"input_text"`
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	AudioBase64    string `json:"audio_base64,omitempty"`
}

type BatchTranslateRequest struct {
	Texts      []string `json:"texts" validate:"required,min=1"`
	SourceLang string   `json:"source_lang" validate:"required"`
	TargetLang string   `json:"target_lang" validate:"required"`
}

type BatchTranslateResponse struct {
	Translations []string `json:"translations"`
}
