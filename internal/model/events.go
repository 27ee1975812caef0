package model

// EventType — тип клиентской дельты инвентаря.
type EventType int32

const (
	// EventItemAdded — в инвентаре появился новый предмет.
	EventItemAdded EventType = iota
	// EventItemRemoved — предмет исчез из инвентаря.
	EventItemRemoved
	// EventItemAmountChanged — у стека изменилось количество.
	EventItemAmountChanged
	// EventItemMoved — предмет переместился между карманами
	// (Source/Target, Displaced — вытесненный при swap).
	EventItemMoved
	// EventEquipmentVacated — экипировочный карман освободился.
	EventEquipmentVacated
	// EventEquipmentChanged — в экипировочном кармане новый предмет.
	EventEquipmentChanged
	// EventPocketReplaced — диагностика: карман перерегистрирован
	// поверх существующего.
	EventPocketReplaced
)

// String returns human-readable event type name.
func (t EventType) String() string {
	switch t {
	case EventItemAdded:
		return "ItemAdded"
	case EventItemRemoved:
		return "ItemRemoved"
	case EventItemAmountChanged:
		return "ItemAmountChanged"
	case EventItemMoved:
		return "ItemMoved"
	case EventEquipmentVacated:
		return "EquipmentVacated"
	case EventEquipmentChanged:
		return "EquipmentChanged"
	case EventPocketReplaced:
		return "PocketReplaced"
	default:
		return "Unknown"
	}
}

// ChangeEvent — одна клиентская дельта. Мутирующие операции инвентаря
// накапливают дельты и отдают их Notifier одним батчем после завершения
// мутации: ядро не знает о транспорте, поток событий — источник истины
// о том, что реально изменилось.
type ChangeEvent struct {
	Type      EventType
	Item      *Item      // nil для EquipmentVacated/PocketReplaced
	Source    PocketKind // только для ItemMoved
	Target    PocketKind // только для ItemMoved
	Displaced *Item      // только для ItemMoved при swap
	Kind      PocketKind // для EquipmentVacated/PocketReplaced
}

func itemAdded(it *Item) ChangeEvent {
	return ChangeEvent{Type: EventItemAdded, Item: it, Source: PocketNone, Target: PocketNone, Kind: PocketNone}
}

func itemRemoved(it *Item) ChangeEvent {
	return ChangeEvent{Type: EventItemRemoved, Item: it, Source: PocketNone, Target: PocketNone, Kind: PocketNone}
}

func itemAmountChanged(it *Item) ChangeEvent {
	return ChangeEvent{Type: EventItemAmountChanged, Item: it, Source: PocketNone, Target: PocketNone, Kind: PocketNone}
}

func itemMoved(it *Item, source, target PocketKind, displaced *Item) ChangeEvent {
	return ChangeEvent{Type: EventItemMoved, Item: it, Source: source, Target: target, Displaced: displaced, Kind: PocketNone}
}

func equipmentVacated(kind PocketKind) ChangeEvent {
	return ChangeEvent{Type: EventEquipmentVacated, Source: PocketNone, Target: PocketNone, Kind: kind}
}

func equipmentChanged(it *Item) ChangeEvent {
	return ChangeEvent{Type: EventEquipmentChanged, Item: it, Source: PocketNone, Target: PocketNone, Kind: PocketNone}
}

func pocketReplaced(kind PocketKind) ChangeEvent {
	return ChangeEvent{Type: EventPocketReplaced, Source: PocketNone, Target: PocketNone, Kind: kind}
}

// Notifier получает батчи дельт для доставки клиенту владельца.
// Вызовы fire-and-forget, порядок батчей равен порядку операций.
type Notifier interface {
	Notify(ownerID int64, events []ChangeEvent)
}
