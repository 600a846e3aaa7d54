package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/repository/contract"
	"ai-assistant-be/pkg/parser"
	"ai-assistant-be/pkg/responder"
	"ai-assistant-be/pkg/utils"

	"github.com/google/uuid"
)

// IDocumentService ingests uploaded files into searchable chunks and serves
// them back as chat context.
type IDocumentService interface {
	SaveUpload(ctx context.Context, userId uuid.UUID, ref *responder.FileRef) (*entity.Document, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentInfoResponse, error)
	RelevantChunks(ctx context.Context, userId uuid.UUID, query string, limit int) ([]string, error)
}

type documentService struct {
	repo       contract.DocumentRepository
	uploadsDir string
	log        logger.ILogger
}

func NewDocumentService(repo contract.DocumentRepository, uploadsDir string, log logger.ILogger) IDocumentService {
	return &documentService{
		repo:       repo,
		uploadsDir: uploadsDir,
		log:        log,
	}
}

func (s *documentService) SaveUpload(ctx context.Context, userId uuid.UUID, ref *responder.FileRef) (*entity.Document, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	storedName := fmt.Sprintf("%s_%s_%s", userId, time.Now().Format("20060102_150405"), filepath.Base(ref.Name))
	storedPath := filepath.Join(s.uploadsDir, storedName)
	if err := os.WriteFile(storedPath, ref.Data, 0o644); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	text, err := parser.ParseFile(ref.Name, ref.Data)
	if err != nil {
		os.Remove(storedPath)
		return nil, responder.NewError("file", fmt.Sprintf("Could not read %s: unsupported or empty file.", ref.Name), err)
	}

	pieces := utils.SplitText(text, constant.DocumentChunkSize, constant.DocumentChunkOverlap)

	mimeType := ref.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	doc := &entity.Document{
		Id:           uuid.New(),
		UserId:       userId,
		Filename:     ref.Name,
		MimeType:     mimeType,
		OriginalPath: storedPath,
		ChunkCount:   len(pieces),
		CreatedAt:    time.Now(),
	}

	chunks := make([]*entity.DocumentChunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			UserId:     userId,
			Text:       piece,
			ChunkIndex: i,
			CreatedAt:  doc.CreatedAt,
		}
	}

	if err := s.repo.CreateWithChunks(ctx, doc, chunks); err != nil {
		os.Remove(storedPath)
		return nil, responder.NewError("file", "The document could not be stored.", err)
	}

	s.log.Info("DocumentService", "Document ingested", map[string]interface{}{
		"user_id":     userId,
		"document_id": doc.Id,
		"filename":    doc.Filename,
		"chunks":      doc.ChunkCount,
	})
	return doc, nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentInfoResponse, error) {
	docs, err := s.repo.FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.DocumentInfoResponse, len(docs))
	for i, d := range docs {
		out[i] = &dto.DocumentInfoResponse{
			DocumentId: d.Id,
			Filename:   d.Filename,
			MimeType:   d.MimeType,
			ChunkCount: d.ChunkCount,
			CreatedAt:  d.CreatedAt,
		}
	}
	return out, nil
}

// RelevantChunks does keyword retrieval over the user's chunks: the query is
// lowercased, words of four runes or more become ILIKE terms, and at most
// limit chunk texts come back.
func (s *documentService) RelevantChunks(ctx context.Context, userId uuid.UUID, query string, limit int) ([]string, error) {
	keywords := extractKeywords(query)
	if len(keywords) == 0 {
		return nil, nil
	}

	chunks, err := s.repo.SearchChunks(ctx, userId, keywords, limit)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return texts, nil
}

func extractKeywords(query string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if len([]rune(word)) > 3 {
			keywords = append(keywords, word)
		}
		if len(keywords) == 5 {
			break
		}
	}
	return keywords
}
