package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Filename     string         `gorm:"type:varchar(255);not null"`
	MimeType     string         `gorm:"type:varchar(127);not null"`
	OriginalPath string         `gorm:"type:text;not null"`
	ChunkCount   int            `gorm:"not null;default:0"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
