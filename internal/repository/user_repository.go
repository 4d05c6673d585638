package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/MauryzetMateos10/chat-prueba/internal/models"
)

type UserRepository interface {
	Create(username, secret string) (*models.User, error)
	FindByCredentials(username, secret string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 新增用戶，用戶名衝突時回傳 ErrDuplicateUsername
func (r *userRepository) Create(username, secret string) (*models.User, error) {
	user := models.User{
		Username: username,
		Password: secret,
	}

	if err := r.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &user, nil
}

// FindByCredentials 同時比對用戶名和密碼，查無記錄時回傳 ErrUserNotFound
// 密碼按原文逐字比對（和原系統一致，不做散列）
func (r *userRepository) FindByCredentials(username, secret string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? AND password = ?", username, secret).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
