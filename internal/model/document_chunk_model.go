package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Text       string    `gorm:"type:text;not null"`
	ChunkIndex int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
