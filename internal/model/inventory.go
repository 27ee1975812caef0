package model

import (
	"fmt"
	"log/slog"
)

// Размер основных сумок по умолчанию, когда size-class данные расы
// недоступны (degraded mode, не ошибка).
const (
	DefaultPocketWidth  int32 = 6
	DefaultPocketHeight int32 = 10
)

// TemporaryCapacity — вместимость временного хранилища.
const TemporaryCapacity = 12

// Inventory — хранилище предметов актора: карманы по видам, деривация
// экипировки с учётом активного weapon set и отчёт клиентских дельт.
//
// Инвентарь принадлежит ровно одному актору и мутируется только его
// единственным логическим потоком; внутренних блокировок нет намеренно.
// Межакторные операции (трейд) обязаны брать доступ к обоим инвентарям
// в глобально согласованном порядке — вне этого ядра.
//
// Многошаговые операции (Move, Insert, PickUp) не атомарны при отказе:
// успешный шаг остаётся применённым, false означает «какой-то префикс
// операции произошёл». Поток дельт — источник истины.
type Inventory struct {
	owner *Creature

	pockets map[PocketKind]Pocket
	order   []PocketKind // порядок регистрации — канонический порядок обхода

	activeSet int32 // активный weapon set (1 или 2)

	// Деривированные ссылки на экипировку активного set. Всегда равны
	// содержимому соответствующих карманов, пересчитываются целиком.
	rightHand *Item
	leftHand  *Item
	magazine  *Item

	notifier  Notifier
	nextID    func() uint32 // минт object ID для разделения стеков
	templates TemplateSource
}

// NewInventory создаёт инвентарь с дефолтными карманами: курсор, временное
// хранилище и все экипировочные/style/оружейные слоты. Основные сумки
// (general/personal/premium) добавляются лениво через InitMainStorage.
func NewInventory(owner *Creature, notifier Notifier, nextID func() uint32, templates TemplateSource) *Inventory {
	inv := &Inventory{
		owner:     owner,
		pockets:   make(map[PocketKind]Pocket, int(PocketKindCount)),
		activeSet: 1,
		notifier:  notifier,
		nextID:    nextID,
		templates: templates,
	}

	inv.AddPocket(NewSingleSlotPocket(PocketCursor))
	inv.AddPocket(NewUnorderedPocket(PocketTemporary, TemporaryCapacity))
	for kind := PocketHead; kind < PocketKindCount; kind++ {
		inv.AddPocket(NewSingleSlotPocket(kind))
	}

	return inv
}

// Owner возвращает актора-владельца.
func (inv *Inventory) Owner() *Creature {
	return inv.owner
}

// AddPocket регистрирует карман под его видом. Повторная регистрация
// заменяет карман — допустимо, но примечательно: логируется и
// репортится диагностической дельтой.
func (inv *Inventory) AddPocket(p Pocket) {
	kind := p.Kind()
	if _, exists := inv.pockets[kind]; exists {
		slog.Warn("pocket replaced", "owner", inv.ownerID(), "kind", kind.String())
		inv.pockets[kind] = p
		inv.dispatch([]ChangeEvent{pocketReplaced(kind)})
		return
	}
	inv.pockets[kind] = p
	inv.order = append(inv.order, kind)
}

// InitMainStorage добавляет основные сумки (general/personal/premium)
// указанного размера. Неположительные размеры означают отсутствие
// size-class данных: логируется warning и берётся дефолт 6×10.
func (inv *Inventory) InitMainStorage(width, height int32) {
	if width <= 0 || height <= 0 {
		slog.Warn("size-class dimensions unavailable, using fallback pocket size",
			"owner", inv.ownerID(), "width", DefaultPocketWidth, "height", DefaultPocketHeight)
		width = DefaultPocketWidth
		height = DefaultPocketHeight
	}
	inv.AddPocket(NewGridPocket(PocketGeneral, width, height))
	inv.AddPocket(NewGridPocket(PocketPersonal, width, height))
	inv.AddPocket(NewGridPocket(PocketPremium, width, height))
}

// Move перемещает предмет в карман target по координате (x,y).
//
// Отказ без изменения состояния: незарегистрированный target, предмет не
// в инвентаре, либо отказ TryAdd целевого кармана. Merge репортится
// дельтами количества; обычное перемещение — дельтой move, вытесненный
// предмет возвращается в исходный карман (так swap через курсор
// round-trip-ит занимающего). После перемещения пересчитывается
// деривация экипировки и применяется off-hand правило.
func (inv *Inventory) Move(item *Item, target PocketKind, x, y int32) bool {
	if item == nil {
		return false
	}
	tp, ok := inv.pockets[target]
	if !ok {
		return false
	}
	source := item.Pocket()
	sp, ok := inv.pockets[source]
	if !ok || !sp.Has(item) {
		return false
	}

	sx, sy := item.Position()
	before := item.Count()
	samePocket := source == target

	var added bool
	var displaced *Item
	if samePocket {
		// Перемещение внутри кармана: сначала освобождаем старые
		// ячейки, при отказе TryAdd откатываемся на прежнюю позицию.
		sp.Remove(item)
		item.SetPlacement(source, sx, sy)
		added, displaced = tp.TryAdd(item, x, y)
		if !added {
			_ = tp.AddUnsafe(item)
			return false
		}
	} else {
		added, displaced = tp.TryAdd(item, x, y)
		if !added {
			return false
		}
	}

	var events []ChangeEvent

	if item.Count() != before {
		// Merge: количество перетекло в существующий стек цели,
		// сам предмет не перемещался.
		if absorber := mergeTargetAt(tp, item, x, y); absorber != nil {
			events = append(events, itemAmountChanged(absorber))
		}
		if item.Count() > 0 {
			if samePocket {
				item.SetPlacement(source, sx, sy)
				_ = tp.AddUnsafe(item)
			}
			events = append(events, itemAmountChanged(item))
		} else {
			if !samePocket {
				sp.Remove(item)
			}
			events = append(events, itemRemoved(item))
		}
	} else {
		if !samePocket {
			sp.Remove(item)
		}
		if displaced != nil {
			inv.returnDisplaced(sp, displaced, sx, sy)
		}
		events = append(events, itemMoved(item, source, target, displaced))
	}

	inv.updateEquipReferences(source, target)
	inv.checkLeftHand(&events, source, target)
	inv.checkEquipMoved(&events, source, target, item)
	inv.dispatch(events)
	return true
}

// returnDisplaced возвращает вытесненный предмет в исходный карман:
// сначала на прежнюю координату перемещённого, затем на первое свободное
// место.
func (inv *Inventory) returnDisplaced(sp Pocket, displaced *Item, sx, sy int32) {
	if ok, _ := sp.TryAdd(displaced, sx, sy); ok {
		return
	}
	if fx, fy, free := sp.FreeSlot(displaced); free {
		if ok, _ := sp.TryAdd(displaced, fx, fy); ok {
			return
		}
	}
	slog.Warn("displaced item has no slot in source pocket",
		"owner", inv.ownerID(), "item", displaced.ObjectID(), "pocket", sp.Kind().String())
}

// mergeTargetAt находит поглотивший стек в прямоугольнике предмета.
// Якорная ячейка (x,y) может оставаться пустой: габаритный предмет
// цепляет стек любой своей ячейкой.
func mergeTargetAt(p Pocket, item *Item, x, y int32) *Item {
	t := item.Template()
	for dy := int32(0); dy < t.Height; dy++ {
		for dx := int32(0); dx < t.Width; dx++ {
			occ := p.ItemAt(x+dx, y+dy)
			if occ != nil && occ != item && occ.TemplateID() == t.TemplateID {
				return occ
			}
		}
	}
	return nil
}

// AddTo кладёт предмет в карман указанного вида на первое свободное место.
// Путь админских выдач и квестовых наград.
func (inv *Inventory) AddTo(item *Item, kind PocketKind) bool {
	var events []ChangeEvent
	ok := inv.addTo(&events, item, kind)
	inv.dispatch(events)
	return ok
}

// Add кладёт предмет в основную сумку, при allowTemporary — с фолбэком
// во временное хранилище.
func (inv *Inventory) Add(item *Item, allowTemporary bool) bool {
	var events []ChangeEvent
	ok := inv.addAny(&events, item, allowTemporary)
	inv.dispatch(events)
	return ok
}

// Insert раскладывает предмет с учётом стекования: сначала доливает
// существующие стеки, затем создаёт полные стеки, остаток (или
// нестекуемый предмет целиком) идёт через Add.
//
// Контракт частичного успеха: при false уже размещённые части остаются
// размещёнными, остаток — на переданном предмете. Повторный Insert
// остатка после освобождения места не теряет и не дублирует количество.
func (inv *Inventory) Insert(item *Item, allowTemporary bool) bool {
	var events []ChangeEvent
	ok := inv.insert(&events, item, allowTemporary)
	inv.dispatch(events)
	return ok
}

// PickUp забирает предмет с земли. Наземная identity не переиспользуется
// (её жизнь привязана к world-visible remove event): в инвентарь идут
// свежие экземпляры. true — источник полностью поглощён, вызывающий
// сигналит удаление с земли. false — предмет остаётся на земле с
// количеством, уменьшенным на поглощённое.
func (inv *Inventory) PickUp(floor *Item) bool {
	if floor == nil || floor.Count() == 0 {
		return false
	}

	var events []ChangeEvent
	carried := floor.Clone(inv.mintID(), floor.Count())
	ok := inv.insert(&events, carried, true)
	inv.dispatch(events)

	if !ok {
		floor.SetCount(carried.Count())
		return false
	}
	floor.SetCount(0)
	return true
}

// Remove удаляет конкретный экземпляр из кармана, который его держит.
func (inv *Inventory) Remove(item *Item) bool {
	if item == nil {
		return false
	}
	kind := item.Pocket()
	p, ok := inv.pockets[kind]
	if !ok || !p.Has(item) {
		return false
	}

	p.Remove(item)
	events := []ChangeEvent{itemRemoved(item)}
	inv.updateEquipReferences(kind)
	if kind.IsEquipRelevant() {
		events = append(events, equipmentVacated(kind))
	}
	inv.dispatch(events)
	return true
}

// RemoveCount списывает до amount единиц шаблона, обходя карманы в
// порядке регистрации. Частичное списание остаётся применённым; true
// только если списано всё запрошенное.
func (inv *Inventory) RemoveCount(templateID int32, amount uint32) bool {
	var events []ChangeEvent
	remaining := amount
	var touched []PocketKind

	for _, kind := range inv.order {
		if remaining == 0 {
			break
		}
		removed, changed, gone := inv.pockets[kind].RemoveCount(templateID, remaining)
		if removed == 0 {
			continue
		}
		remaining -= removed
		touched = append(touched, kind)
		for _, it := range changed {
			events = append(events, itemAmountChanged(it))
		}
		for _, it := range gone {
			events = append(events, itemRemoved(it))
			if kind.IsEquipRelevant() {
				events = append(events, equipmentVacated(kind))
			}
		}
	}

	inv.updateEquipReferences(touched...)
	inv.dispatch(events)
	return remaining == 0
}

// Decrement уменьшает количество у конкретного экземпляра. Отказ без
// изменения состояния, если предмета нет в инвентаре или количества
// не хватает. Ноль удаляет предмет из кармана, кроме Sac.
func (inv *Inventory) Decrement(item *Item, amount uint32) bool {
	if item == nil || amount == 0 {
		return false
	}
	kind := item.Pocket()
	p, ok := inv.pockets[kind]
	if !ok || !p.Has(item) {
		return false
	}
	if item.Count() < amount {
		return false
	}

	item.SetCount(item.Count() - amount)
	var events []ChangeEvent
	if item.Count() == 0 && !item.Template().IsSac() {
		p.Remove(item)
		events = append(events, itemRemoved(item))
		if kind.IsEquipRelevant() {
			events = append(events, equipmentVacated(kind))
		}
	} else {
		events = append(events, itemAmountChanged(item))
	}
	inv.updateEquipReferences(kind)
	inv.dispatch(events)
	return true
}

// SwitchWeaponSet переключает активный weapon set (1 или 2) и целиком
// пересчитывает деривацию рук.
func (inv *Inventory) SwitchWeaponSet(set int32) bool {
	if set < 1 || set > WeaponSetCount {
		return false
	}
	inv.activeSet = set
	inv.refreshEquipReferences()
	return true
}

// ActiveWeaponSet возвращает номер активного weapon set.
func (inv *Inventory) ActiveWeaponSet() int32 {
	return inv.activeSet
}

// RightHand возвращает деривированный предмет правой руки активного set.
func (inv *Inventory) RightHand() *Item { return inv.rightHand }

// LeftHand возвращает деривированный предмет левой руки активного set.
func (inv *Inventory) LeftHand() *Item { return inv.leftHand }

// Magazine возвращает деривированный боезапас активного set.
func (inv *Inventory) Magazine() *Item { return inv.magazine }

// HasPocket возвращает true, если карман вида зарегистрирован.
func (inv *Inventory) HasPocket(kind PocketKind) bool {
	_, ok := inv.pockets[kind]
	return ok
}

// GetItem ищет предмет по object ID, обходя карманы в порядке регистрации.
func (inv *Inventory) GetItem(objectID uint32) *Item {
	for _, kind := range inv.order {
		if it := inv.pockets[kind].Item(objectID); it != nil {
			return it
		}
	}
	return nil
}

// GetItemAt возвращает предмет по координате в кармане вида.
func (inv *Inventory) GetItemAt(kind PocketKind, x, y int32) *Item {
	p, ok := inv.pockets[kind]
	if !ok {
		return nil
	}
	return p.ItemAt(x, y)
}

// CountOf возвращает суммарное количество предметов шаблона по всем
// карманам.
func (inv *Inventory) CountOf(templateID int32) uint64 {
	var total uint64
	for _, kind := range inv.order {
		total += uint64(inv.pockets[kind].Count(templateID))
	}
	return total
}

// HasCount возвращает true, если предметов шаблона не меньше amount.
func (inv *Inventory) HasCount(templateID int32, amount uint64) bool {
	return inv.CountOf(templateID) >= amount
}

// Gold возвращает суммарное количество валюты.
func (inv *Inventory) Gold() uint64 {
	return inv.CountOf(GoldTemplateID)
}

// AddGold зачисляет валюту, прозрачно раскладывая её по стекам с учётом
// per-stack лимита шаблона (сначала доливаются неполные стеки).
func (inv *Inventory) AddGold(amount uint32) bool {
	if amount == 0 {
		return false
	}
	tpl := inv.templates.Template(GoldTemplateID)
	if tpl == nil {
		slog.Warn("gold template not registered", "owner", inv.ownerID())
		return false
	}
	item, err := NewItem(inv.mintID(), tpl, inv.ownerID(), amount)
	if err != nil {
		return false
	}
	var events []ChangeEvent
	ok := inv.insert(&events, item, false)
	inv.dispatch(events)
	return ok
}

// RemoveGold списывает валюту. Частичное списание остаётся применённым.
func (inv *Inventory) RemoveGold(amount uint32) bool {
	return inv.RemoveCount(GoldTemplateID, amount)
}

// HasGold возвращает true, если валюты не меньше amount.
func (inv *Inventory) HasGold(amount uint64) bool {
	return inv.Gold() >= amount
}

// Items возвращает все предметы инвентаря в каноническом порядке
// (карманы в порядке регистрации, внутри — порядок вставки).
func (inv *Inventory) Items() []*Item {
	var out []*Item
	for _, kind := range inv.order {
		out = append(out, inv.pockets[kind].Items()...)
	}
	return out
}

// Load раскладывает предметы по записанным в них позициям через
// AddUnsafe. Путь загрузки из БД: дельты не репортятся, деривация
// экипировки пересчитывается один раз в конце.
func (inv *Inventory) Load(items []*Item) error {
	for _, it := range items {
		p, ok := inv.pockets[it.Pocket()]
		if !ok {
			return fmt.Errorf("pocket %v not registered for item %d", it.Pocket(), it.ObjectID())
		}
		if err := p.AddUnsafe(it); err != nil {
			return fmt.Errorf("placing item %d: %w", it.ObjectID(), err)
		}
	}
	inv.refreshEquipReferences()
	return nil
}

// --- внутренние шаги операций (накапливают дельты, не диспатчат) ---

func (inv *Inventory) addTo(events *[]ChangeEvent, item *Item, kind PocketKind) bool {
	if item == nil {
		return false
	}
	p, ok := inv.pockets[kind]
	if !ok {
		return false
	}
	x, y, free := p.FreeSlot(item)
	if !free {
		return false
	}
	if added, _ := p.TryAdd(item, x, y); !added {
		return false
	}
	*events = append(*events, itemAdded(item))
	inv.updateEquipReferences(kind)
	if kind.IsEquipRelevant() {
		*events = append(*events, equipmentChanged(item))
	}
	return true
}

func (inv *Inventory) addAny(events *[]ChangeEvent, item *Item, allowTemporary bool) bool {
	if inv.addTo(events, item, PocketGeneral) {
		return true
	}
	if allowTemporary {
		return inv.addTo(events, item, PocketTemporary)
	}
	return false
}

func (inv *Inventory) insert(events *[]ChangeEvent, item *Item, allowTemporary bool) bool {
	if item == nil {
		return false
	}
	tpl := item.Template()
	if !tpl.CanStack() {
		return inv.addAny(events, item, allowTemporary)
	}

	if gp, ok := inv.pockets[PocketGeneral]; ok {
		for _, changed := range gp.FillStacks(item) {
			*events = append(*events, itemAmountChanged(changed))
		}
	}
	if item.Count() == 0 {
		return true
	}

	for item.Count() > tpl.MaxStack {
		stack := item.Clone(inv.mintID(), tpl.MaxStack)
		if !inv.addAny(events, stack, allowTemporary) {
			return false
		}
		item.SetCount(item.Count() - tpl.MaxStack)
	}
	return inv.addAny(events, item, allowTemporary)
}

// checkLeftHand — off-hand правило: перемещение в/из кармана правой руки
// не должно оставить несовместимый предмет в зеркальной левой руке (или,
// если она пуста, в magazine). Конфликтующий предмет перекладывается в
// основную сумку с фолбэком во временное хранилище; если места нет
// нигде, предмет остаётся надетым (fail-open, предметы не уничтожаются).
func (inv *Inventory) checkLeftHand(events *[]ChangeEvent, source, target PocketKind) {
	for set := int32(1); set <= WeaponSetCount; set++ {
		rh := RightHandPocket(set)
		if source != rh && target != rh {
			continue
		}

		kind := LeftHandPocket(set)
		occ := inv.pocketItemAt(kind)
		if occ == nil {
			kind = MagazinePocket(set)
			occ = inv.pocketItemAt(kind)
		}
		if occ == nil {
			continue
		}

		ep := inv.pockets[kind]
		relocated := false
		for _, dst := range []PocketKind{PocketGeneral, PocketTemporary} {
			dp, ok := inv.pockets[dst]
			if !ok {
				continue
			}
			fx, fy, free := dp.FreeSlot(occ)
			if !free {
				continue
			}
			ep.Remove(occ)
			if added, _ := dp.TryAdd(occ, fx, fy); added {
				relocated = true
			} else {
				ep.TryAdd(occ, 0, 0)
			}
			break
		}
		if !relocated {
			slog.Warn("off-hand item kept equipped, no room to unequip",
				"owner", inv.ownerID(), "item", occ.ObjectID(), "pocket", kind.String())
			continue
		}

		*events = append(*events, itemMoved(occ, kind, PocketNone, nil))
		*events = append(*events, equipmentVacated(kind))
		inv.updateEquipReferences(kind)
	}
}

// checkEquipMoved репортит экипировочные дельты перемещения: источник
// освободился, цель получила предмет.
func (inv *Inventory) checkEquipMoved(events *[]ChangeEvent, source, target PocketKind, item *Item) {
	if source.IsEquipRelevant() {
		*events = append(*events, equipmentVacated(source))
	}
	if target.IsEquipRelevant() {
		*events = append(*events, equipmentChanged(item))
	}
}

// updateEquipReferences пересчитывает деривацию рук, если среди
// изменившихся карманов есть оружейные. Всегда пересчитываются все три
// ссылки разом — частичный пересчёт мог бы смешать weapon set.
func (inv *Inventory) updateEquipReferences(changed ...PocketKind) {
	for _, kind := range changed {
		if kind.InHandRange() {
			inv.refreshEquipReferences()
			return
		}
	}
}

func (inv *Inventory) refreshEquipReferences() {
	inv.rightHand = inv.pocketItemAt(RightHandPocket(inv.activeSet))
	inv.leftHand = inv.pocketItemAt(LeftHandPocket(inv.activeSet))
	inv.magazine = inv.pocketItemAt(MagazinePocket(inv.activeSet))
}

func (inv *Inventory) pocketItemAt(kind PocketKind) *Item {
	p, ok := inv.pockets[kind]
	if !ok {
		return nil
	}
	return p.ItemAt(0, 0)
}

func (inv *Inventory) dispatch(events []ChangeEvent) {
	if inv.notifier == nil || len(events) == 0 {
		return
	}
	inv.notifier.Notify(inv.ownerID(), events)
}

func (inv *Inventory) ownerID() int64 {
	if inv.owner == nil {
		return 0
	}
	return inv.owner.CharacterID()
}

func (inv *Inventory) mintID() uint32 {
	if inv.nextID == nil {
		return 0
	}
	return inv.nextID()
}
