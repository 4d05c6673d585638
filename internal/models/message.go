package models

import (
	"time"

	"gorm.io/gorm"
)

// Message 代表一條持久化的聊天消息
type Message struct {
	gorm.Model
	Author    string    `json:"author" gorm:"type:varchar(50);not null"` // 發送者的顯示名稱（自由文本，不是外鍵）
	Body      string    `json:"body" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp" gorm:"index"` // 服務器在寫入時指定，排序鍵
}

// NewMessage 創建一條新的聊天消息，時間戳由服務器指定
func NewMessage(author, body string) Message {
	return Message{
		Author:    author,
		Body:      body,
		Timestamp: time.Now(),
	}
}
