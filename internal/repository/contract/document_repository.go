package contract

import (
	"context"

	"ai-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	// CreateWithChunks persists a document and its chunks atomically.
	CreateWithChunks(ctx context.Context, doc *entity.Document, chunks []*entity.DocumentChunk) error
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Document, error)

	// SearchChunks returns up to limit chunks owned by the user whose text
	// matches any of the keywords, case-insensitively.
	SearchChunks(ctx context.Context, userId uuid.UUID, keywords []string, limit int) ([]*entity.DocumentChunk, error)
}
