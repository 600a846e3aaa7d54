package implementation

import (
	"context"
	"strings"

	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/mapper"
	"ai-assistant-be/internal/model"
	"ai-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) CreateWithChunks(ctx context.Context, doc *entity.Document, chunks []*entity.DocumentChunk) error {
	docModel := r.mapper.DocumentToModel(doc)
	chunkModels := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		chunkModels[i] = r.mapper.ChunkToModel(c)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(docModel).Error; err != nil {
			return err
		}
		if len(chunkModels) > 0 {
			if err := tx.CreateInBatches(chunkModels, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	*doc = *r.mapper.DocumentToEntity(docModel)
	return nil
}

func (r *DocumentRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Document, error) {
	var models []*model.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*entity.Document, len(models))
	for i, m := range models {
		docs[i] = r.mapper.DocumentToEntity(m)
	}
	return docs, nil
}

func (r *DocumentRepositoryImpl) SearchChunks(ctx context.Context, userId uuid.UUID, keywords []string, limit int) ([]*entity.DocumentChunk, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Where("user_id = ?", userId)

	var conditions []string
	var args []interface{}
	for _, kw := range keywords {
		conditions = append(conditions, "text ILIKE ?")
		args = append(args, "%"+kw+"%")
	}
	query = query.Where("("+strings.Join(conditions, " OR ")+")", args...)

	var models []*model.DocumentChunk
	if err := query.Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	chunks := make([]*entity.DocumentChunk, len(models))
	for i, m := range models {
		chunks[i] = r.mapper.ChunkToEntity(m)
	}
	return chunks, nil
}
