package testutil

import (
	"sync/atomic"
	"testing"

	"github.com/udisondev/openrealm/internal/data"
	"github.com/udisondev/openrealm/internal/model"
)

var nextObjectID atomic.Uint32

func init() {
	nextObjectID.Store(0x30000000)
}

// NextObjectID выдаёт уникальный object ID для тестовых предметов.
// Счётчик общий на весь тестовый процесс, коллизий между тестами нет.
func NextObjectID() uint32 {
	return nextObjectID.Add(1)
}

// NewCreature создаёт тестового персонажа с инициализированным основным
// хранилищем и опциональным получателем дельт.
func NewCreature(tb testing.TB, charID int64, notifier model.Notifier) *model.Creature {
	tb.Helper()
	c := model.NewCreature(NextObjectID(), charID, "tester", model.RaceHuman, notifier, NextObjectID, data.Templates{})
	w, h, ok := data.PocketDimensions(model.RaceHuman)
	if !ok {
		tb.Fatalf("no pocket dimensions for human")
	}
	c.Inventory().InitMainStorage(w, h)
	return c
}

// NewItem создаёт предмет по шаблону из реестра.
func NewItem(tb testing.TB, templateID int32, ownerID int64, count uint32) *model.Item {
	tb.Helper()
	tpl := data.Template(templateID)
	if tpl == nil {
		tb.Fatalf("unknown template %d", templateID)
	}
	item, err := model.NewItem(NextObjectID(), tpl, ownerID, count)
	if err != nil {
		tb.Fatalf("creating item: %v", err)
	}
	return item
}

// EventRecorder копит батчи дельт, отданные инвентарём. Не потокобезопасен:
// инвентарь в тестах мутируется из одной горутины.
type EventRecorder struct {
	Batches [][]model.ChangeEvent
}

// Notify реализует model.Notifier.
func (r *EventRecorder) Notify(ownerID int64, events []model.ChangeEvent) {
	r.Batches = append(r.Batches, events)
}

// Last возвращает последний батч (nil если дельт не было).
func (r *EventRecorder) Last() []model.ChangeEvent {
	if len(r.Batches) == 0 {
		return nil
	}
	return r.Batches[len(r.Batches)-1]
}

// Reset очищает накопленные батчи.
func (r *EventRecorder) Reset() {
	r.Batches = nil
}
