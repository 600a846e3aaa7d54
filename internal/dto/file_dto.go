package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadFileResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Chunks     int       `json:"chunks"`
}

type DocumentInfoResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}
