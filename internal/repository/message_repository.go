package repository

import (
	"gorm.io/gorm"

	"github.com/MauryzetMateos10/chat-prueba/internal/models"
)

type MessageRepository interface {
	Create(author, body string) (*models.Message, error)
	FindAll() ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 寫入一條聊天消息，時間戳在這裡指定
func (r *messageRepository) Create(author, body string) (*models.Message, error) {
	message := models.NewMessage(author, body)
	if err := r.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// FindAll 回傳全部聊天消息，按時間戳升序
func (r *messageRepository) FindAll() ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Order("timestamp asc").Find(&messages).Error
	return messages, err
}
