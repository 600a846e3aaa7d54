package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Filename     string
	MimeType     string
	OriginalPath string
	ChunkCount   int
	Metadata     map[string]interface{}
	CreatedAt    time.Time
}

type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	UserId     uuid.UUID
	Text       string
	ChunkIndex int
	CreatedAt  time.Time
}
