package world

import (
	"testing"

	"github.com/udisondev/openrealm/internal/data"
	"github.com/udisondev/openrealm/internal/model"
)

func groundItem(t *testing.T, templateID int32, count uint32) *model.Item {
	t.Helper()
	tpl := data.Template(templateID)
	if tpl == nil {
		t.Fatalf("unknown template %d", templateID)
	}
	item, err := model.NewItem(IDGenerator().NextItemID(), tpl, 0, count)
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}
	return item
}

func groundInventory() *model.Inventory {
	inv := model.NewInventory(nil, nil, IDGenerator().NextItemID, data.Templates{})
	inv.InitMainStorage(6, 10)
	return inv
}

func TestGroundDropAndGet(t *testing.T) {
	g := NewGround()
	item := groundItem(t, 100, 1)
	item.SetPlacement(model.PocketGeneral, 2, 2)

	gi := g.Drop(item, 150, -40, 777)
	if g.Count() != 1 {
		t.Errorf("Count() = %d, want 1", g.Count())
	}
	// Dropping detaches the item from any pocket.
	if item.Pocket() != model.PocketNone {
		t.Errorf("dropped item pocket = %v, want None", item.Pocket())
	}
	if x, y := gi.Position(); x != 150 || y != -40 {
		t.Errorf("position = (%d,%d), want (150,-40)", x, y)
	}
	if gi.DropperID() != 777 {
		t.Errorf("dropper = %d, want 777", gi.DropperID())
	}

	if g.Get(item.ObjectID()) != gi {
		t.Errorf("Get mismatch")
	}
	if g.Get(0xDEAD) != nil {
		t.Errorf("Get(unknown) != nil")
	}
}

func TestGroundPickUp(t *testing.T) {
	g := NewGround()
	inv := groundInventory()
	item := groundItem(t, 10, 30) // arrows
	g.Drop(item, 0, 0, 0)

	if !g.PickUp(inv, item.ObjectID()) {
		t.Fatalf("PickUp = false")
	}
	if g.Count() != 0 {
		t.Errorf("ground entry not removed after full pickup")
	}
	if got := inv.CountOf(10); got != 30 {
		t.Errorf("inventory arrows = %d, want 30", got)
	}
	// The ground identity does not enter the inventory.
	if inv.GetItem(item.ObjectID()) != nil {
		t.Errorf("ground object ID reused in inventory")
	}
}

func TestGroundPickUpUnknownID(t *testing.T) {
	g := NewGround()
	inv := groundInventory()
	if g.PickUp(inv, 12345) {
		t.Errorf("PickUp of unknown object = true")
	}
}

func TestGroundPartialPickUpKeepsEntry(t *testing.T) {
	g := NewGround()

	// 1x1 main bag holding a near-full arrow stack, temporary filled.
	inv := model.NewInventory(nil, nil, IDGenerator().NextItemID, data.Templates{})
	inv.InitMainStorage(1, 1)
	seed := groundItem(t, 10, 45)
	if !inv.Insert(seed, false) {
		t.Fatalf("Insert(seed) = false")
	}
	for i := 0; i < model.TemporaryCapacity; i++ {
		filler := groundItem(t, 100, 1)
		if !inv.AddTo(filler, model.PocketTemporary) {
			t.Fatalf("filling temporary: item %d rejected", i)
		}
	}

	floor := groundItem(t, 10, 20)
	g.Drop(floor, 0, 0, 0)

	if g.PickUp(inv, floor.ObjectID()) {
		t.Fatalf("PickUp = true, want false (partial)")
	}
	// Entry stays with the count reduced by what was absorbed.
	if g.Count() != 1 {
		t.Errorf("ground entry removed after partial pickup")
	}
	if floor.Count() != 15 {
		t.Errorf("floor count = %d, want 15", floor.Count())
	}
	if seed.Count() != 50 {
		t.Errorf("seed stack = %d, want 50", seed.Count())
	}
}
