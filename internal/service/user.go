package service

import (
	"github.com/MauryzetMateos10/chat-prueba/internal/models"
	"github.com/MauryzetMateos10/chat-prueba/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register 創建新用戶，用戶名已被占用時回傳 repository.ErrDuplicateUsername
func (s *UserService) Register(username, secret string) (*models.User, error) {
	return s.userRepo.Create(username, secret)
}

// Login 驗證帳密，查無匹配記錄時回傳 repository.ErrUserNotFound
// 只做讀取，不會產生任何記錄
func (s *UserService) Login(username, secret string) (*models.User, error) {
	return s.userRepo.FindByCredentials(username, secret)
}
