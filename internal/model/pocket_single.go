package model

import "fmt"

// SingleSlotPocket — карман ровно на один предмет с фиксированной
// координатой (0,0). Используется для экипировочных слотов и курсора.
type SingleSlotPocket struct {
	kind PocketKind
	item *Item
}

// NewSingleSlotPocket создаёт пустой single-slot карман.
func NewSingleSlotPocket(kind PocketKind) *SingleSlotPocket {
	return &SingleSlotPocket{kind: kind}
}

// Kind возвращает вид кармана.
func (p *SingleSlotPocket) Kind() PocketKind { return p.kind }

// TryAdd занимает слот предметом. Непустой слот отдаёт занимающего как
// displaced (slot-swap); вызывающий отвечает за его новое место.
func (p *SingleSlotPocket) TryAdd(item *Item, x, y int32) (bool, *Item) {
	if item == nil {
		return false, nil
	}
	displaced := p.item
	if displaced != nil {
		displaced.ClearPlacement()
	}
	p.item = item
	item.SetPlacement(p.kind, 0, 0)
	return true, displaced
}

// AddUnsafe занимает слот предметом с записанной позицией (0,0).
// Ошибка, если слот уже занят или позиция структурно не подходит.
func (p *SingleSlotPocket) AddUnsafe(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if x, y := item.Position(); x != 0 || y != 0 {
		return fmt.Errorf("single-slot pocket %v cannot hold item %d at (%d,%d)", p.kind, item.ObjectID(), x, y)
	}
	if p.item != nil {
		return fmt.Errorf("single-slot pocket %v already occupied", p.kind)
	}
	p.item = item
	item.SetPlacement(p.kind, 0, 0)
	return nil
}

// Remove освобождает слот, если он занят именно этим экземпляром.
func (p *SingleSlotPocket) Remove(item *Item) bool {
	if item == nil || p.item == nil || p.item.ObjectID() != item.ObjectID() {
		return false
	}
	held := p.item
	p.item = nil
	if held.Pocket() == p.kind {
		held.ClearPlacement()
	}
	return true
}

// RemoveCount списывает до amount единиц с хранимого стека.
func (p *SingleSlotPocket) RemoveCount(templateID int32, amount uint32) (uint32, []*Item, []*Item) {
	it := p.item
	if it == nil || it.TemplateID() != templateID || amount == 0 {
		return 0, nil, nil
	}
	take := amount
	if take > it.Count() {
		take = it.Count()
	}
	it.SetCount(it.Count() - take)
	if it.Count() == 0 && !it.Template().IsSac() {
		p.item = nil
		if it.Pocket() == p.kind {
			it.ClearPlacement()
		}
		return take, nil, []*Item{it}
	}
	return take, []*Item{it}, nil
}

// ItemAt возвращает хранимый предмет для координаты (0,0).
func (p *SingleSlotPocket) ItemAt(x, y int32) *Item {
	if x != 0 || y != 0 {
		return nil
	}
	return p.item
}

// Item возвращает предмет по object ID.
func (p *SingleSlotPocket) Item(objectID uint32) *Item {
	if p.item != nil && p.item.ObjectID() == objectID {
		return p.item
	}
	return nil
}

// Has возвращает true, если слот занят этим экземпляром.
func (p *SingleSlotPocket) Has(item *Item) bool {
	return item != nil && p.item == item
}

// Count возвращает количество предметов шаблона в слоте.
func (p *SingleSlotPocket) Count(templateID int32) uint32 {
	if p.item == nil || p.item.TemplateID() != templateID {
		return 0
	}
	return p.item.Count()
}

// Items возвращает содержимое слота (пустой срез либо один предмет).
func (p *SingleSlotPocket) Items() []*Item {
	if p.item == nil {
		return nil
	}
	return []*Item{p.item}
}

// FillStacks доливает хранимый стек, если он того же шаблона и не полон.
func (p *SingleSlotPocket) FillStacks(incoming *Item) []*Item {
	if incoming == nil || p.item == nil {
		return nil
	}
	t := incoming.Template()
	if !t.CanStack() || p.item.TemplateID() != t.TemplateID || p.item.Count() >= t.MaxStack {
		return nil
	}
	absorb := t.MaxStack - p.item.Count()
	if absorb > incoming.Count() {
		absorb = incoming.Count()
	}
	if absorb == 0 {
		return nil
	}
	p.item.SetCount(p.item.Count() + absorb)
	incoming.SetCount(incoming.Count() - absorb)
	return []*Item{p.item}
}

// FreeSlot возвращает (0,0), если слот пуст.
func (p *SingleSlotPocket) FreeSlot(item *Item) (int32, int32, bool) {
	return 0, 0, p.item == nil
}
