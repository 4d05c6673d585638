package service

import (
	"github.com/MauryzetMateos10/chat-prueba/internal/models"
	"github.com/MauryzetMateos10/chat-prueba/internal/repository"
)

type ChatService struct {
	messageRepo repository.MessageRepository
}

func NewChatService(messageRepo repository.MessageRepository) *ChatService {
	return &ChatService{messageRepo: messageRepo}
}

// Append 持久化一條聊天消息並回傳帶時間戳的記錄
func (s *ChatService) Append(author, body string) (*models.Message, error) {
	return s.messageRepo.Create(author, body)
}

// History 回傳全部歷史消息，按時間戳升序，轉成 history 事件的格式
func (s *ChatService) History() ([]models.HistoryMessage, error) {
	messages, err := s.messageRepo.FindAll()
	if err != nil {
		return nil, err
	}

	history := make([]models.HistoryMessage, 0, len(messages))
	for _, m := range messages {
		history = append(history, models.HistoryMessage{
			Author:    m.Author,
			Body:      m.Body,
			Timestamp: m.Timestamp,
		})
	}
	return history, nil
}
