package world

import (
	"sync"
	"time"

	"github.com/udisondev/openrealm/internal/model"
)

// GroundItem — предмет, лежащий на земле. Identity предмета живёт вместе
// с наземным объектом: клиентский remove привязан к ней, поэтому при
// подборе в инвентарь идут свежие экземпляры (см. Inventory.PickUp).
type GroundItem struct {
	item      *model.Item
	x, y      int32
	droppedAt time.Time
	dropperID uint32 // object ID уронившего (0 = дроп монстра)
}

// Item возвращает данные предмета.
func (g *GroundItem) Item() *model.Item { return g.item }

// Position возвращает мировую координату.
func (g *GroundItem) Position() (x, y int32) { return g.x, g.y }

// DroppedAt возвращает момент появления на земле.
func (g *GroundItem) DroppedAt() time.Time { return g.droppedAt }

// DropperID возвращает object ID уронившего (0 для дропа монстров).
func (g *GroundItem) DropperID() uint32 { return g.dropperID }

// Ground — реестр наземных предметов мира. В отличие от инвентаря,
// земля разделяется между акторами, поэтому доступ под мьютексом.
type Ground struct {
	mu    sync.RWMutex
	items map[uint32]*GroundItem // item objectID → запись
}

// NewGround создаёт пустой реестр.
func NewGround() *Ground {
	return &Ground{items: make(map[uint32]*GroundItem)}
}

// Drop кладёт предмет на землю.
func (g *Ground) Drop(item *model.Item, x, y int32, dropperID uint32) *GroundItem {
	gi := &GroundItem{
		item:      item,
		x:         x,
		y:         y,
		droppedAt: time.Now(),
		dropperID: dropperID,
	}
	item.ClearPlacement()

	g.mu.Lock()
	g.items[item.ObjectID()] = gi
	g.mu.Unlock()
	return gi
}

// Get возвращает наземный предмет по object ID (nil если нет).
func (g *Ground) Get(objectID uint32) *GroundItem {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.items[objectID]
}

// Remove убирает предмет с земли. Возвращает запись или nil.
func (g *Ground) Remove(objectID uint32) *GroundItem {
	g.mu.Lock()
	defer g.mu.Unlock()
	gi, ok := g.items[objectID]
	if !ok {
		return nil
	}
	delete(g.items, objectID)
	return gi
}

// Count возвращает число предметов на земле.
func (g *Ground) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.items)
}

// PickUp переносит наземный предмет в инвентарь актора. Наземная запись
// удаляется только когда источник полностью поглощён; при нехватке места
// предмет остаётся на земле с уменьшенным количеством.
func (g *Ground) PickUp(inv *model.Inventory, objectID uint32) bool {
	gi := g.Get(objectID)
	if gi == nil {
		return false
	}
	if !inv.PickUp(gi.item) {
		return false
	}
	g.Remove(objectID)
	return true
}
