package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/pkg/llm"
	"ai-assistant-be/pkg/responder"
	"ai-assistant-be/pkg/stt/whisper"
	"ai-assistant-be/pkg/tts/parler"

	"github.com/google/uuid"
)

// llmTextResponder answers a text turn with the routed model, grounding the
// prompt on the user's uploaded documents when any match.
type llmTextResponder struct {
	router *llm.Router
	docs   IDocumentService
	log    logger.ILogger
}

func NewLLMTextResponder(router *llm.Router, docs IDocumentService, log logger.ILogger) responder.Text {
	return &llmTextResponder{
		router: router,
		docs:   docs,
		log:    log,
	}
}

func (r *llmTextResponder) Send(ctx context.Context, text string, sctx responder.SessionContext) (*responder.TextResult, error) {
	userContent := text
	if r.docs != nil {
		chunks, err := r.docs.RelevantChunks(ctx, sctx.UserId, text, constant.DocumentContextLimit)
		if err != nil {
			// Document context is best-effort; the turn proceeds without it.
			r.log.Warn("TextResponder", "Document context lookup failed", map[string]interface{}{
				"user_id": sctx.UserId,
				"error":   err.Error(),
			})
		} else if len(chunks) > 0 {
			userContent = fmt.Sprintf("%s\n\n[Context from documents: %s]", text, strings.Join(chunks, "\n---\n"))
		}
	}

	history := make([]llm.Message, 0, len(sctx.History)+1)
	for _, h := range sctx.History {
		history = append(history, llm.Message{Role: h.Role, Content: h.Content})
	}
	history = append(history, llm.Message{Role: constant.ChatMessageRoleUser, Content: userContent})

	reply, tier, err := r.router.Chat(ctx, history, sctx.Lang)
	if err != nil {
		return nil, responder.NewError("text-chat", "The assistant could not produce a reply.", err)
	}

	return &responder.TextResult{
		Content:   reply,
		ModelUsed: tier,
	}, nil
}

// voiceResponder handles one voice turn end to end: speech recognition, the
// text exchange, and synthesis of the spoken reply. Synthesized audio is kept
// under audioDir so the reply can be re-fetched later by its reference.
type voiceResponder struct {
	stt      *whisper.Client
	tts      *parler.Client
	text     responder.Text
	audioDir string
	log      logger.ILogger
}

func NewVoiceResponder(stt *whisper.Client, tts *parler.Client, text responder.Text, audioDir string, log logger.ILogger) responder.Audio {
	return &voiceResponder{
		stt:      stt,
		tts:      tts,
		text:     text,
		audioDir: audioDir,
		log:      log,
	}
}

func (r *voiceResponder) Send(ctx context.Context, audio []byte, sctx responder.SessionContext) (*responder.AudioResult, error) {
	tr, err := r.stt.Transcribe(ctx, audio, "input.wav")
	if err != nil {
		return nil, responder.NewError("stt", "Could not understand the recording.", err)
	}
	if strings.TrimSpace(tr.Text) == "" {
		return nil, responder.NewError("stt", "The recording contained no recognizable speech.", nil)
	}

	// The detected language drives both model routing and synthesis.
	sctx.Lang = tr.Lang
	textRes, err := r.text.Send(ctx, tr.Text, sctx)
	if err != nil {
		return nil, err
	}

	wav, err := r.tts.Synthesize(ctx, textRes.Content, tr.Lang)
	if err != nil {
		return nil, responder.NewError("tts", "Could not voice the reply.", err)
	}

	ref := uuid.New().String() + ".wav"
	if err := os.MkdirAll(r.audioDir, 0o755); err == nil {
		err = os.WriteFile(filepath.Join(r.audioDir, ref), wav, 0o644)
	}
	if err != nil {
		// The caller still gets the bytes; only the durable reference is lost.
		r.log.Warn("VoiceResponder", "Failed to persist synthesized audio", map[string]interface{}{
			"ref":   ref,
			"error": err.Error(),
		})
		ref = ""
	}

	return &responder.AudioResult{
		UserText:      tr.Text,
		AssistantText: textRes.Content,
		Lang:          tr.Lang,
		ModelUsed:     textRes.ModelUsed,
		AudioRef:      ref,
		AudioFormat:   parler.Format,
		AudioBytes:    wav,
	}, nil
}

// uploadResponder adapts the document service to the file step of a turn.
type uploadResponder struct {
	docs IDocumentService
}

func NewUploadResponder(docs IDocumentService) responder.File {
	return &uploadResponder{docs: docs}
}

func (r *uploadResponder) Send(ctx context.Context, ref *responder.FileRef, sctx responder.SessionContext) (*responder.FileResult, error) {
	doc, err := r.docs.SaveUpload(ctx, sctx.UserId, ref)
	if err != nil {
		if _, ok := responder.AsError(err); ok {
			return nil, err
		}
		return nil, responder.NewError("file", "The file could not be processed.", err)
	}

	return &responder.FileResult{
		DocumentId: doc.Id,
		Name:       doc.Filename,
		Chunks:     doc.ChunkCount,
	}, nil
}
