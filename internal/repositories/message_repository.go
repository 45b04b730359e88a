package repositories

import (
	"context"

	"github.com/xteonlyone/portfolio/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for contact message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id string) (*models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id string) error
	CountMessages(ctx context.Context) (int64, error)
}

type postgresMessageRepository struct {
	db *gorm.DB
}

func NewPostgresMessageRepository(db *gorm.DB) MessageRepository {
	return &postgresMessageRepository{db: db}
}

func (r *postgresMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Omit("User").Create(message).Error
}

func (r *postgresMessageRepository) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *postgresMessageRepository) ListMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *postgresMessageRepository) DeleteMessage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Message{}).Error
}

func (r *postgresMessageRepository) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Count(&count).Error
	return count, err
}
