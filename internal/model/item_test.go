package model

import (
	"testing"
)

func TestNewItemValidation(t *testing.T) {
	if _, err := NewItem(1, nil, 100, 1); err == nil {
		t.Errorf("NewItem(nil template) = nil error")
	}
	if _, err := NewItem(1, tmplSword, 100, 0); err == nil {
		t.Errorf("NewItem(count 0, unique) = nil error")
	}
	// Sac containers may start empty.
	if _, err := NewItem(1, tmplQuiver, 100, 0); err != nil {
		t.Errorf("NewItem(count 0, sac) unexpected error: %v", err)
	}
	// Count above MaxStack is allowed: the cap applies at placement.
	item, err := NewItem(1, tmplArrow, 100, 500)
	if err != nil {
		t.Fatalf("NewItem(500 arrows) unexpected error: %v", err)
	}
	if item.Count() != 500 {
		t.Errorf("Count() = %d, want 500", item.Count())
	}
}

func TestItemPlacement(t *testing.T) {
	item := mustItem(t, tmplSword, 1)
	if item.Pocket() != PocketNone {
		t.Errorf("fresh item pocket = %v, want None", item.Pocket())
	}

	item.SetPlacement(PocketGeneral, 2, 5)
	if item.Pocket() != PocketGeneral {
		t.Errorf("pocket = %v, want General", item.Pocket())
	}
	if x, y := item.Position(); x != 2 || y != 5 {
		t.Errorf("position = (%d,%d), want (2,5)", x, y)
	}

	item.ClearPlacement()
	if item.Pocket() != PocketNone {
		t.Errorf("pocket after clear = %v, want None", item.Pocket())
	}
}

func TestItemClone(t *testing.T) {
	orig := mustItem(t, tmplArrow, 50)
	orig.SetPlacement(PocketGeneral, 1, 1)

	clone := orig.Clone(9999, 20)
	if clone.ObjectID() != 9999 || clone.Count() != 20 {
		t.Errorf("clone = id %d count %d, want 9999/20", clone.ObjectID(), clone.Count())
	}
	if clone.TemplateID() != orig.TemplateID() || clone.OwnerID() != orig.OwnerID() {
		t.Errorf("clone template/owner mismatch")
	}
	// Clones start unplaced.
	if clone.Pocket() != PocketNone {
		t.Errorf("clone pocket = %v, want None", clone.Pocket())
	}
}

func TestStackPolicy(t *testing.T) {
	if tmplSword.CanStack() {
		t.Errorf("unique template CanStack() = true")
	}
	if !tmplArrow.CanStack() {
		t.Errorf("stackable template CanStack() = false")
	}
	// Sac counts down in place but never merges.
	if tmplQuiver.CanStack() {
		t.Errorf("sac template CanStack() = true")
	}
	if !tmplQuiver.IsSac() || tmplArrow.IsSac() {
		t.Errorf("IsSac() misreported")
	}
}
