package gateway

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub держит websocket-подписчиков по character ID и доставляет им
// JSON-сообщения. Доставка fire-and-forget: упавшая запись логируется,
// подписчик снимается при закрытии соединения.
type Hub struct {
	mu   sync.Mutex
	subs map[int64]*subscriber
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex // сериализует записи в соединение
}

// NewHub создаёт пустой hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int64]*subscriber)}
}

// Subscribe регистрирует соединение клиента персонажа. Существующая
// подписка заменяется (reconnect).
func (h *Hub) Subscribe(charID int64, conn *websocket.Conn) {
	h.mu.Lock()
	h.subs[charID] = &subscriber{conn: conn}
	h.mu.Unlock()
}

// Unsubscribe снимает подписку персонажа.
func (h *Hub) Unsubscribe(charID int64) {
	h.mu.Lock()
	delete(h.subs, charID)
	h.mu.Unlock()
}

// Send сериализует payload в JSON и отправляет клиенту персонажа.
// Отсутствие подписчика не ошибка: клиент мог отключиться.
func (h *Hub) Send(charID int64, payload any) {
	h.mu.Lock()
	sub, ok := h.subs[charID]
	h.mu.Unlock()
	if !ok {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshaling gateway payload", "character", charID, "err", err)
		return
	}

	sub.mu.Lock()
	err = sub.conn.WriteMessage(websocket.TextMessage, data)
	sub.mu.Unlock()
	if err != nil {
		slog.Debug("dropping unreachable subscriber", "character", charID, "err", err)
		h.Unsubscribe(charID)
	}
}
