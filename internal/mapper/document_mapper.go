package mapper

import (
	"encoding/json"

	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) DocumentToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(d.Metadata) > 0 {
		// Corrupt metadata is not worth failing a read for; the column is advisory.
		_ = json.Unmarshal(d.Metadata, &metadata)
	}

	return &entity.Document{
		Id:           d.Id,
		UserId:       d.UserId,
		Filename:     d.Filename,
		MimeType:     d.MimeType,
		OriginalPath: d.OriginalPath,
		ChunkCount:   d.ChunkCount,
		Metadata:     metadata,
		CreatedAt:    d.CreatedAt,
	}
}

func (m *DocumentMapper) DocumentToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var metadata datatypes.JSON
	if d.Metadata != nil {
		if raw, err := json.Marshal(d.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.Document{
		Id:           d.Id,
		UserId:       d.UserId,
		Filename:     d.Filename,
		MimeType:     d.MimeType,
		OriginalPath: d.OriginalPath,
		ChunkCount:   d.ChunkCount,
		Metadata:     metadata,
		CreatedAt:    d.CreatedAt,
	}
}

func (m *DocumentMapper) ChunkToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}
	return &entity.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		UserId:     c.UserId,
		Text:       c.Text,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentMapper) ChunkToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}
	return &model.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		UserId:     c.UserId,
		Text:       c.Text,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}
