package gateway

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/openrealm/internal/model"
)

// dialHub поднимает тестовый websocket-сервер, подписывает соединение на
// charID и возвращает клиентскую сторону.
func dialHub(t *testing.T, hub *Hub, charID int64) *websocket.Conn {
	t.Helper()

	subscribed := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Subscribe(charID, conn)
		close(subscribed)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case <-subscribed:
	case <-time.After(5 * time.Second):
		t.Fatalf("subscription timed out")
	}
	return client
}

func TestHubDeliversUpdate(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub, 42)

	notifier := NewNotifier(hub)
	item, err := model.NewItem(0x31000001, &model.ItemTemplate{
		TemplateID: 100, Name: "Sword", Policy: model.StackPolicyUnique, MaxStack: 1, Width: 1, Height: 3,
	}, 42, 1)
	require.NoError(t, err)
	item.SetPlacement(model.PocketGeneral, 1, 2)

	notifier.Notify(42, []model.ChangeEvent{
		{Type: model.EventItemAdded, Item: item},
	})

	client.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg updateMessage
	require.NoError(t, client.ReadJSON(&msg))

	assert.Equal(t, "inventory_update", msg.Type)
	require.Len(t, msg.Events, 1)
	assert.Equal(t, "item_added", msg.Events[0].Type)
	require.NotNil(t, msg.Events[0].Item)
	assert.Equal(t, uint32(0x31000001), msg.Events[0].Item.ObjectID)
	assert.Equal(t, "General", msg.Events[0].Item.Pocket)
}

func TestHubSendToAbsentSubscriber(t *testing.T) {
	hub := NewHub()
	// Доставка в никуда не паникует и не блокирует.
	hub.Send(999, updateMessage{Type: "inventory_update"})
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub, 7)

	hub.Unsubscribe(7)
	hub.Send(7, updateMessage{Type: "inventory_update"})

	client.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var msg updateMessage
	err := client.ReadJSON(&msg)
	assert.Error(t, err, "message delivered after unsubscribe")
}
