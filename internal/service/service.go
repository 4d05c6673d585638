package service

import (
	"github.com/MauryzetMateos10/chat-prueba/internal/repository"
)

type Services struct {
	UserService      *UserService
	ChatService      *ChatService
	WebSocketManager *WebSocketManager
}

func NewServices(repos *repository.Repositories) *Services {
	userService := NewUserService(repos.User)
	chatService := NewChatService(repos.Message)
	wsManager := NewWebSocketManager(userService, chatService)

	return &Services{
		UserService:      userService,
		ChatService:      chatService,
		WebSocketManager: wsManager,
	}
}
