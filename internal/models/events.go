package models

import (
	"encoding/json"
	"time"
)

// 客戶端與服務器之間的事件名稱
const (
	EventChat     = "send-chat"
	EventRegister = "register"
	EventLogin    = "login"
	EventClaim    = "claim-identity"
	EventTyping   = "typing"

	// 僅由服務器發出的事件
	EventAuthResult = "registration-result"
	EventRoster     = "roster"
	EventHistory    = "history"
)

// Envelope 是 WebSocket 上每個事件的外層結構
// 每個文本幀承載一個事件，data 的格式由事件名稱決定
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ChatPayload 是 send-chat 事件的負載，廣播時原樣回送（不附加時間戳）
type ChatPayload struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

// CredentialsPayload 是 register 和 login 事件共用的負載
type CredentialsPayload struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// AuthResultPayload 是 registration-result 事件的負載
// register 和 login 共用同一種結果格式
type AuthResultPayload struct {
	Accepted bool   `json:"accepted"`
	Username string `json:"username,omitempty"`
}

// ClaimPayload 是 claim-identity 事件的負載
type ClaimPayload struct {
	Name string `json:"name"`
}

// RosterPayload 是 roster 事件的負載，names 按登記順序排列
type RosterPayload struct {
	Names []string `json:"names"`
}

// HistoryMessage 是 history 事件中單條消息的格式
type HistoryMessage struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryPayload 是 history 事件的負載，按時間戳升序排列
type HistoryPayload struct {
	Messages []HistoryMessage `json:"messages"`
}

// NewEnvelope 將負載序列化並包裝成事件
func NewEnvelope(event string, payload interface{}) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{Event: event, Data: data}, nil
}
