package service

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MauryzetMateos10/chat-prueba/internal/models"
	"github.com/MauryzetMateos10/chat-prueba/internal/repository"
)

const (
	maxMessageSize = 4096             // 單條消息的大小上限
	pongWait       = 60 * time.Second // 收到 pong 之前允許的最長等待
	pingPeriod     = 54 * time.Second // 心跳間隔，必須小於 pongWait
	writeWait      = 10 * time.Second // 單次寫入的超時
	sendBufferSize = 256              // 每個客戶端的發送隊列長度
)

// Client 代表一個 WebSocket 客戶端連接
// username 在成功執行 claim-identity 之前為空字串，
// 綁定之後只由管理器的事件迴圈讀寫
type Client struct {
	Conn     *websocket.Conn // WebSocket 連接
	SendChan chan []byte     // 消息發送通道，用於異步傳送消息
	username string          // 綁定的顯示名稱（未綁定時為空）
}

// enqueue 將消息放入發送隊列，隊列滿時丟棄並記錄
// 只能由客戶端自己的讀取協程或連接建立流程調用
func (c *Client) enqueue(payload []byte) {
	select {
	case c.SendChan <- payload:
	default:
		log.Printf("send buffer full, dropping direct message")
	}
}

// claimRequest 代表一次 claim-identity 請求，由事件迴圈處理
type claimRequest struct {
	client *Client
	name   string
}

// broadcastRequest 代表一次廣播，skip 不為 nil 時跳過該客戶端
type broadcastRequest struct {
	payload []byte
	skip    *Client
}

// WebSocketManager 管理所有的 WebSocket 連接和消息傳遞
//
// 客戶端集合和在線名單的「變更後立即廣播」序列全部在 Run 的
// 事件迴圈中執行，所以其他事件看到的名單快照永遠是最新的。
// 涉及資料庫的事件（聊天、註冊、登入）在各自連接的讀取協程中
// 處理，存儲卡住時只影響那一個連接。
type WebSocketManager struct {
	userService *UserService
	chatService *ChatService
	roster      *Roster

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	claims     chan claimRequest
	broadcast  chan broadcastRequest
	stop       chan struct{}
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
// 調用方必須在獨立的協程中執行 Run
func NewWebSocketManager(userService *UserService, chatService *ChatService) *WebSocketManager {
	return &WebSocketManager{
		userService: userService,
		chatService: chatService,
		roster:      NewRoster(),
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		claims:      make(chan claimRequest),
		broadcast:   make(chan broadcastRequest),
		stop:        make(chan struct{}),
	}
}

// Run 是管理器的事件迴圈，處理連接註冊、註銷、名稱登記和廣播
// 會一直執行到 Stop 被調用
func (m *WebSocketManager) Run() {
	for {
		select {
		case <-m.stop:
			return

		case client := <-m.register:
			m.clients[client] = true
			log.Printf("client connected, total clients: %d", len(m.clients))

		case client := <-m.unregister:
			m.removeClient(client)

		case req := <-m.claims:
			m.handleClaim(req)

		case req := <-m.broadcast:
			m.broadcastPayload(req.payload, req.skip)
		}
	}
}

// Stop 終止事件迴圈
func (m *WebSocketManager) Stop() {
	close(m.stop)
}

// removeClient 註銷一個客戶端，重複註銷是空操作
// 客戶端已綁定名稱時釋放名稱並廣播新名單
func (m *WebSocketManager) removeClient(client *Client) {
	if !m.clients[client] {
		return
	}
	delete(m.clients, client)
	close(client.SendChan)
	log.Printf("client disconnected, total clients: %d", len(m.clients))

	if client.username != "" {
		m.roster.Release(client.username)
		m.broadcastRoster()
	}
}

// handleClaim 處理名稱登記
// 名稱已被占用或客戶端已綁定過名稱時靜默忽略（和原系統一致，
// 客戶端以是否收到 roster 廣播判斷結果）
func (m *WebSocketManager) handleClaim(req claimRequest) {
	if !m.clients[req.client] || req.client.username != "" {
		return
	}
	if !m.roster.Claim(req.name) {
		return
	}
	req.client.username = req.name
	m.broadcastRoster()
}

// broadcastRoster 向所有客戶端廣播當前在線名單
// 必須緊跟在名單變更之後、同一次事件處理之內調用
func (m *WebSocketManager) broadcastRoster() {
	payload, err := marshalEvent(models.EventRoster, models.RosterPayload{
		Names: m.roster.Snapshot(),
	})
	if err != nil {
		log.Printf("failed to encode roster: %v", err)
		return
	}
	m.broadcastPayload(payload, nil)
}

// broadcastPayload 將消息發給所有客戶端，skip 不為 nil 時跳過
// 發送隊列已滿的客戶端視為失聯，直接關閉其連接，
// 後續的註銷流程由其讀取協程觸發
func (m *WebSocketManager) broadcastPayload(payload []byte, skip *Client) {
	for client := range m.clients {
		if client == skip {
			continue
		}
		select {
		case client.SendChan <- payload:
		default:
			log.Printf("send buffer full, closing connection")
			client.Conn.Close()
		}
	}
}

// HandleClient 處理一個新升級完成的 WebSocket 連接
// 先推送歷史消息，再註冊到事件迴圈並啟動讀寫協程；
// 本方法會阻塞到連接關閉為止
func (m *WebSocketManager) HandleClient(conn *websocket.Conn) {
	client := &Client{
		Conn:     conn,
		SendChan: make(chan []byte, sendBufferSize),
	}

	// 連接建立後無條件推送全部歷史消息，失敗時只記錄
	m.sendHistory(client)

	m.register <- client

	go m.writePump(client)
	m.readPump(client)
}

// sendHistory 向新連接推送按時間升序的歷史消息
func (m *WebSocketManager) sendHistory(client *Client) {
	history, err := m.chatService.History()
	if err != nil {
		log.Printf("failed to load message history: %v", err)
		return
	}

	payload, err := marshalEvent(models.EventHistory, models.HistoryPayload{Messages: history})
	if err != nil {
		log.Printf("failed to encode history: %v", err)
		return
	}
	client.enqueue(payload)
}

// readPump 持續讀取並分發來自客戶端的事件
func (m *WebSocketManager) readPump(client *Client) {
	defer func() {
		m.unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		var env models.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("event parse error: %v", err)
			continue
		}

		m.dispatch(client, &env)
	}
}

// dispatch 按事件名稱分發處理
// 格式錯誤或未知的事件只記錄，不會中斷連接
func (m *WebSocketManager) dispatch(client *Client, env *models.Envelope) {
	switch env.Event {
	case models.EventChat:
		m.handleChat(env.Data)
	case models.EventRegister:
		m.handleRegister(client, env.Data)
	case models.EventLogin:
		m.handleLogin(client, env.Data)
	case models.EventClaim:
		var payload models.ClaimPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			log.Printf("claim payload parse error: %v", err)
			return
		}
		m.claims <- claimRequest{client: client, name: payload.Name}
	case models.EventTyping:
		// 負載原樣轉發給除發送者之外的所有客戶端
		payload, err := json.Marshal(models.Envelope{Event: models.EventTyping, Data: env.Data})
		if err != nil {
			log.Printf("failed to encode typing event: %v", err)
			return
		}
		m.broadcast <- broadcastRequest{payload: payload, skip: client}
	default:
		log.Printf("unknown event %q ignored", env.Event)
	}
}

// handleChat 先持久化聊天消息，成功後才廣播給所有客戶端（含發送者）
// 存儲失敗時只記錄，不廣播，連接保持存活
func (m *WebSocketManager) handleChat(data json.RawMessage) {
	var payload models.ChatPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("chat payload parse error: %v", err)
		return
	}

	if _, err := m.chatService.Append(payload.Author, payload.Body); err != nil {
		log.Printf("failed to store chat message: %v", err)
		return
	}

	// 廣播負載原樣回送，時間戳只存在於數據庫
	out, err := marshalEvent(models.EventChat, payload)
	if err != nil {
		log.Printf("failed to encode chat event: %v", err)
		return
	}
	m.broadcast <- broadcastRequest{payload: out}
}

// handleRegister 處理註冊，結果只回給發送者
// 用戶名衝突是預期結果，回 accepted:false；存儲故障只記錄，不回結果
func (m *WebSocketManager) handleRegister(client *Client, data json.RawMessage) {
	var payload models.CredentialsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("register payload parse error: %v", err)
		return
	}

	user, err := m.userService.Register(payload.Username, payload.Secret)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			m.sendAuthResult(client, models.AuthResultPayload{Accepted: false})
		} else {
			log.Printf("failed to register user: %v", err)
		}
		return
	}

	m.sendAuthResult(client, models.AuthResultPayload{Accepted: true, Username: user.Username})
}

// handleLogin 處理登入，結果只回給發送者
// 查無匹配帳密回 accepted:false；存儲故障只記錄，不回結果
func (m *WebSocketManager) handleLogin(client *Client, data json.RawMessage) {
	var payload models.CredentialsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("login payload parse error: %v", err)
		return
	}

	user, err := m.userService.Login(payload.Username, payload.Secret)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			m.sendAuthResult(client, models.AuthResultPayload{Accepted: false})
		} else {
			log.Printf("failed to validate user: %v", err)
		}
		return
	}

	m.sendAuthResult(client, models.AuthResultPayload{Accepted: true, Username: user.Username})
}

func (m *WebSocketManager) sendAuthResult(client *Client, result models.AuthResultPayload) {
	payload, err := marshalEvent(models.EventAuthResult, result)
	if err != nil {
		log.Printf("failed to encode auth result: %v", err)
		return
	}
	client.enqueue(payload)
}

// writePump 處理向客戶端發送消息並維持心跳
func (m *WebSocketManager) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 發送通道已由註銷流程關閉
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// marshalEvent 序列化一個服務器發出的事件
func marshalEvent(event string, payload interface{}) ([]byte, error) {
	env, err := models.NewEnvelope(event, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}
