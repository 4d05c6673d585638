package repository

import "gorm.io/gorm"

type Repositories struct {
	User    UserRepository
	Message MessageRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Message: NewMessageRepository(db),
	}
}
