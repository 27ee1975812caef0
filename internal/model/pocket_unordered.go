package model

import "fmt"

// UnorderedPocket — карман-список без координат, ограниченный capacity.
// Используется как временное/переполненное хранилище.
type UnorderedPocket struct {
	kind     PocketKind
	capacity int
	items    []*Item // порядок вставки
}

// NewUnorderedPocket создаёт пустой карман указанной вместимости.
func NewUnorderedPocket(kind PocketKind, capacity int) *UnorderedPocket {
	if capacity < 1 {
		capacity = 1
	}
	return &UnorderedPocket{kind: kind, capacity: capacity}
}

// Kind возвращает вид кармана.
func (p *UnorderedPocket) Kind() PocketKind { return p.kind }

// Capacity возвращает максимальное число предметов.
func (p *UnorderedPocket) Capacity() int { return p.capacity }

// TryAdd добавляет предмет. Координата игнорируется — карман без
// координат, предметам записывается (0,0). Отказ только при переполнении.
func (p *UnorderedPocket) TryAdd(item *Item, x, y int32) (bool, *Item) {
	if item == nil || len(p.items) >= p.capacity {
		return false, nil
	}
	p.items = append(p.items, item)
	item.SetPlacement(p.kind, 0, 0)
	return true, nil
}

// AddUnsafe добавляет предмет из персистентного источника.
// Ошибка только при переполнении (структурное несоответствие).
func (p *UnorderedPocket) AddUnsafe(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if len(p.items) >= p.capacity {
		return fmt.Errorf("pocket %v is over capacity %d", p.kind, p.capacity)
	}
	p.items = append(p.items, item)
	item.SetPlacement(p.kind, 0, 0)
	return nil
}

// Remove удаляет конкретный экземпляр.
func (p *UnorderedPocket) Remove(item *Item) bool {
	if item == nil {
		return false
	}
	for i, it := range p.items {
		if it.ObjectID() == item.ObjectID() {
			p.items = append(p.items[:i], p.items[i+1:]...)
			if it.Pocket() == p.kind {
				it.ClearPlacement()
			}
			return true
		}
	}
	return false
}

// RemoveCount списывает до amount единиц предметов шаблона в порядке
// вставки.
func (p *UnorderedPocket) RemoveCount(templateID int32, amount uint32) (uint32, []*Item, []*Item) {
	var removed uint32
	var changed, gone []*Item

	snapshot := make([]*Item, len(p.items))
	copy(snapshot, p.items)

	for _, it := range snapshot {
		if removed == amount {
			break
		}
		if it.TemplateID() != templateID {
			continue
		}
		take := amount - removed
		if take > it.Count() {
			take = it.Count()
		}
		it.SetCount(it.Count() - take)
		removed += take
		if it.Count() == 0 && !it.Template().IsSac() {
			p.Remove(it)
			gone = append(gone, it)
		} else {
			changed = append(changed, it)
		}
	}
	return removed, changed, gone
}

// ItemAt всегда возвращает nil: у кармана нет координат.
func (p *UnorderedPocket) ItemAt(x, y int32) *Item {
	return nil
}

// Item возвращает предмет по object ID.
func (p *UnorderedPocket) Item(objectID uint32) *Item {
	for _, it := range p.items {
		if it.ObjectID() == objectID {
			return it
		}
	}
	return nil
}

// Has возвращает true, если карман содержит этот экземпляр.
func (p *UnorderedPocket) Has(item *Item) bool {
	if item == nil {
		return false
	}
	for _, it := range p.items {
		if it == item {
			return true
		}
	}
	return false
}

// Count возвращает суммарное количество предметов шаблона.
func (p *UnorderedPocket) Count(templateID int32) uint32 {
	var total uint32
	for _, it := range p.items {
		if it.TemplateID() == templateID {
			total += it.Count()
		}
	}
	return total
}

// Items возвращает предметы в порядке вставки (копия).
func (p *UnorderedPocket) Items() []*Item {
	out := make([]*Item, len(p.items))
	copy(out, p.items)
	return out
}

// FillStacks жадно доливает существующие стеки того же шаблона.
func (p *UnorderedPocket) FillStacks(incoming *Item) []*Item {
	if incoming == nil {
		return nil
	}
	t := incoming.Template()
	if !t.CanStack() {
		return nil
	}

	var changed []*Item
	for _, it := range p.items {
		if incoming.Count() == 0 {
			break
		}
		if it.TemplateID() != t.TemplateID || it.Count() >= t.MaxStack {
			continue
		}
		absorb := t.MaxStack - it.Count()
		if absorb > incoming.Count() {
			absorb = incoming.Count()
		}
		it.SetCount(it.Count() + absorb)
		incoming.SetCount(incoming.Count() - absorb)
		changed = append(changed, it)
	}
	return changed
}

// FreeSlot возвращает (0,0), пока capacity не исчерпана.
func (p *UnorderedPocket) FreeSlot(item *Item) (int32, int32, bool) {
	return 0, 0, len(p.items) < p.capacity
}
