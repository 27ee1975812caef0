package model

import "fmt"

// gridEntry — внутренняя запись о размещении предмета в сетке.
// Координата дублируется из Item намеренно: при Move предмет уже может
// быть переставлен в другой карман, а исходная сетка обязана вычистить
// свои ячейки по собственной записи.
type gridEntry struct {
	item *Item
	x, y int32
}

// GridPocket — карман-сетка width×height. Предмет занимает прямоугольник
// ячеек согласно габаритам шаблона; две записи не могут пересекаться.
type GridPocket struct {
	kind   PocketKind
	width  int32
	height int32

	entries []*gridEntry          // порядок вставки — канонический порядок итерации
	cells   map[int32]*gridEntry  // y*width+x → запись
	byID    map[uint32]*gridEntry // objectID → запись
}

// NewGridPocket создаёт пустую сетку указанного размера.
func NewGridPocket(kind PocketKind, width, height int32) *GridPocket {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &GridPocket{
		kind:   kind,
		width:  width,
		height: height,
		cells:  make(map[int32]*gridEntry),
		byID:   make(map[uint32]*gridEntry),
	}
}

// Kind возвращает вид кармана.
func (p *GridPocket) Kind() PocketKind { return p.kind }

// Width возвращает ширину сетки в ячейках.
func (p *GridPocket) Width() int32 { return p.width }

// Height возвращает высоту сетки в ячейках.
func (p *GridPocket) Height() int32 { return p.height }

func (p *GridPocket) cellIndex(x, y int32) int32 {
	return y*p.width + x
}

// fits проверяет, что прямоугольник предмета целиком лежит в сетке.
func (p *GridPocket) fits(t *ItemTemplate, x, y int32) bool {
	return x >= 0 && y >= 0 && x+t.Width <= p.width && y+t.Height <= p.height
}

// collidersAt возвращает записи, пересекающиеся с прямоугольником предмета
// по координате (каждая запись один раз).
func (p *GridPocket) collidersAt(t *ItemTemplate, x, y int32) []*gridEntry {
	var out []*gridEntry
	for dy := int32(0); dy < t.Height; dy++ {
		for dx := int32(0); dx < t.Width; dx++ {
			e, ok := p.cells[p.cellIndex(x+dx, y+dy)]
			if !ok {
				continue
			}
			seen := false
			for _, prev := range out {
				if prev == e {
					seen = true
					break
				}
			}
			if !seen {
				out = append(out, e)
			}
		}
	}
	return out
}

func (p *GridPocket) place(item *Item, x, y int32) {
	e := &gridEntry{item: item, x: x, y: y}
	t := item.Template()
	for dy := int32(0); dy < t.Height; dy++ {
		for dx := int32(0); dx < t.Width; dx++ {
			p.cells[p.cellIndex(x+dx, y+dy)] = e
		}
	}
	p.entries = append(p.entries, e)
	p.byID[item.ObjectID()] = e
	item.SetPlacement(p.kind, x, y)
}

func (p *GridPocket) removeEntry(e *gridEntry) {
	t := e.item.Template()
	for dy := int32(0); dy < t.Height; dy++ {
		for dx := int32(0); dx < t.Width; dx++ {
			idx := p.cellIndex(e.x+dx, e.y+dy)
			if p.cells[idx] == e {
				delete(p.cells, idx)
			}
		}
	}
	for i, cur := range p.entries {
		if cur == e {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			break
		}
	}
	delete(p.byID, e.item.ObjectID())
	// Предмет, уже переставленный в другой карман, не трогаем.
	if e.item.Pocket() == p.kind {
		e.item.ClearPlacement()
	}
}

// TryAdd размещает предмет по координате.
//
// Одиночная коллизия с совместимым неполным стеком — merge: существующий
// стек поглощает количество (до MaxStack), сам предмет остаётся в исходном
// кармане с остатком (возможно нулевым). Одиночная коллизия с чем-то ещё —
// swap: занимающий вытесняется и возвращается как displaced. Несколько
// коллизий — отказ.
func (p *GridPocket) TryAdd(item *Item, x, y int32) (bool, *Item) {
	if item == nil || !p.fits(item.Template(), x, y) {
		return false, nil
	}

	coll := p.collidersAt(item.Template(), x, y)
	switch len(coll) {
	case 0:
		p.place(item, x, y)
		return true, nil
	case 1:
		occ := coll[0].item
		t := item.Template()
		if occ.TemplateID() == t.TemplateID && t.CanStack() && occ.Count() < t.MaxStack {
			absorb := t.MaxStack - occ.Count()
			if absorb > item.Count() {
				absorb = item.Count()
			}
			occ.SetCount(occ.Count() + absorb)
			item.SetCount(item.Count() - absorb)
			return true, nil
		}
		p.removeEntry(coll[0])
		p.place(item, x, y)
		return true, occ
	default:
		return false, nil
	}
}

// AddUnsafe размещает предмет по координате, записанной в нём самом,
// без проверки коллизий. Путь загрузки из персистентного источника:
// данные считаются согласованными.
func (p *GridPocket) AddUnsafe(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	x, y := item.Position()
	if !p.fits(item.Template(), x, y) {
		return fmt.Errorf("item %d does not fit pocket %v at (%d,%d)", item.ObjectID(), p.kind, x, y)
	}
	p.place(item, x, y)
	return nil
}

// Remove удаляет конкретный экземпляр из сетки.
func (p *GridPocket) Remove(item *Item) bool {
	if item == nil {
		return false
	}
	e, ok := p.byID[item.ObjectID()]
	if !ok {
		return false
	}
	p.removeEntry(e)
	return true
}

// RemoveCount списывает до amount единиц предметов шаблона в порядке
// вставки. Стеки, дошедшие до нуля, удаляются (кроме Sac).
func (p *GridPocket) RemoveCount(templateID int32, amount uint32) (uint32, []*Item, []*Item) {
	var removed uint32
	var changed, gone []*Item

	snapshot := make([]*gridEntry, len(p.entries))
	copy(snapshot, p.entries)

	for _, e := range snapshot {
		if removed == amount {
			break
		}
		it := e.item
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
			p.removeEntry(e)
			gone = append(gone, it)
		} else {
			changed = append(changed, it)
		}
	}
	return removed, changed, gone
}

// ItemAt возвращает предмет, занимающий ячейку.
func (p *GridPocket) ItemAt(x, y int32) *Item {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return nil
	}
	e, ok := p.cells[p.cellIndex(x, y)]
	if !ok {
		return nil
	}
	return e.item
}

// Item возвращает предмет по object ID.
func (p *GridPocket) Item(objectID uint32) *Item {
	e, ok := p.byID[objectID]
	if !ok {
		return nil
	}
	return e.item
}

// Has возвращает true, если сетка содержит этот экземпляр.
func (p *GridPocket) Has(item *Item) bool {
	if item == nil {
		return false
	}
	e, ok := p.byID[item.ObjectID()]
	return ok && e.item == item
}

// Count возвращает суммарное количество предметов шаблона.
func (p *GridPocket) Count(templateID int32) uint32 {
	var total uint32
	for _, e := range p.entries {
		if e.item.TemplateID() == templateID {
			total += e.item.Count()
		}
	}
	return total
}

// Items возвращает предметы в порядке вставки.
func (p *GridPocket) Items() []*Item {
	out := make([]*Item, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.item)
	}
	return out
}

// FillStacks жадно доливает существующие стеки того же шаблона в порядке
// вставки, уменьшая количество у incoming. Возвращает изменённые стеки.
func (p *GridPocket) FillStacks(incoming *Item) []*Item {
	if incoming == nil {
		return nil
	}
	t := incoming.Template()
	if !t.CanStack() {
		return nil
	}

	var changed []*Item
	for _, e := range p.entries {
		if incoming.Count() == 0 {
			break
		}
		it := e.item
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

// FreeSlot возвращает первую позицию (скан по строкам), где предмет
// помещается без коллизий.
func (p *GridPocket) FreeSlot(item *Item) (int32, int32, bool) {
	if item == nil {
		return 0, 0, false
	}
	t := item.Template()
	for y := int32(0); y+t.Height <= p.height; y++ {
		for x := int32(0); x+t.Width <= p.width; x++ {
			if len(p.collidersAt(t, x, y)) == 0 {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
