package model

// PocketKind — вид кармана внутри инвентаря. Вид однозначно определяет
// семантику кармана: экипировочный он или нет, grid или single-slot.
//
// Порядок констант значим: диапазон PocketHead..PocketMagazine2 считается
// экипировкой, диапазон PocketRightHand1..PocketMagazine2 — оружейными
// карманами (обе руки + боезапас, по паре на weapon set).
type PocketKind int32

// PocketNone обозначает «вне инвентаря» (предмет на земле или удалён).
const PocketNone PocketKind = -1

const (
	PocketCursor PocketKind = iota // предмет «в руке» курсора клиента
	PocketTemporary                // переполнение/временное хранилище
	PocketGeneral                  // основная сумка (grid)
	PocketPersonal                 // личная сумка (grid)
	PocketPremium                  // премиум-сумка (grid)

	// Экипировочные слоты (single-slot, координата всегда 0,0).
	PocketHead
	PocketChest
	PocketLegs
	PocketFeet
	PocketHands
	PocketBack
	PocketNeck
	PocketFingerL
	PocketFingerR

	// Style-слоты (внешний вид поверх экипировки).
	PocketStyleHead
	PocketStyleChest
	PocketStyleLegs
	PocketStyleWeapon

	// Оружейные карманы. Два weapon set, у каждого правая рука,
	// левая рука и боезапас (magazine). Диапазон должен оставаться
	// непрерывным — updateEquipReferences опирается на это.
	PocketRightHand1
	PocketLeftHand1
	PocketMagazine1
	PocketRightHand2
	PocketLeftHand2
	PocketMagazine2

	PocketKindCount
)

// String returns human-readable pocket kind name.
func (k PocketKind) String() string {
	switch k {
	case PocketNone:
		return "None"
	case PocketCursor:
		return "Cursor"
	case PocketTemporary:
		return "Temporary"
	case PocketGeneral:
		return "General"
	case PocketPersonal:
		return "Personal"
	case PocketPremium:
		return "Premium"
	case PocketHead:
		return "Head"
	case PocketChest:
		return "Chest"
	case PocketLegs:
		return "Legs"
	case PocketFeet:
		return "Feet"
	case PocketHands:
		return "Hands"
	case PocketBack:
		return "Back"
	case PocketNeck:
		return "Neck"
	case PocketFingerL:
		return "FingerL"
	case PocketFingerR:
		return "FingerR"
	case PocketStyleHead:
		return "StyleHead"
	case PocketStyleChest:
		return "StyleChest"
	case PocketStyleLegs:
		return "StyleLegs"
	case PocketStyleWeapon:
		return "StyleWeapon"
	case PocketRightHand1:
		return "RightHand1"
	case PocketLeftHand1:
		return "LeftHand1"
	case PocketMagazine1:
		return "Magazine1"
	case PocketRightHand2:
		return "RightHand2"
	case PocketLeftHand2:
		return "LeftHand2"
	case PocketMagazine2:
		return "Magazine2"
	default:
		return "Unknown"
	}
}

// IsEquipRelevant возвращает true для карманов, содержимое которых
// надето на персонажа (экипировка, style-слоты, оружейные карманы).
func (k PocketKind) IsEquipRelevant() bool {
	return k >= PocketHead && k < PocketKindCount
}

// InHandRange возвращает true для оружейных карманов (руки + magazine
// обоих weapon set).
func (k PocketKind) InHandRange() bool {
	return k >= PocketRightHand1 && k <= PocketMagazine2
}

// WeaponSetCount — количество weapon set у персонажа.
const WeaponSetCount int32 = 2

// RightHandPocket возвращает карман правой руки для weapon set (1 или 2).
func RightHandPocket(set int32) PocketKind {
	if set == 2 {
		return PocketRightHand2
	}
	return PocketRightHand1
}

// LeftHandPocket возвращает карман левой руки для weapon set (1 или 2).
func LeftHandPocket(set int32) PocketKind {
	if set == 2 {
		return PocketLeftHand2
	}
	return PocketLeftHand1
}

// MagazinePocket возвращает карман боезапаса для weapon set (1 или 2).
func MagazinePocket(set int32) PocketKind {
	if set == 2 {
		return PocketMagazine2
	}
	return PocketMagazine1
}

// Pocket — контейнер предметов, адресуемых координатой.
//
// Три варианта: GridPocket (сетка width×height, предметы занимают один или
// несколько cell), SingleSlotPocket (ровно один предмет, координата 0,0),
// UnorderedPocket (список без координат, ограничен capacity).
//
// Карман ведёт собственный учёт размещения (не полагается на поля Item при
// удалении): во время Move предмет уже может быть переставлен в целевой
// карман, а исходный всё ещё должен уметь вычистить свои записи.
type Pocket interface {
	// Kind возвращает вид кармана.
	Kind() PocketKind

	// TryAdd размещает предмет по координате, если место свободно.
	// Grid: одиночный совместимый стек поглощает количество (merge, сам
	// предмет остаётся в исходном кармане), одиночный несовместимый
	// занимающий вытесняется и возвращается как displaced (swap),
	// несколько коллизий — отказ. Single-slot: всегда slot-swap.
	// Unordered: отказ только при исчерпании capacity.
	TryAdd(item *Item, x, y int32) (ok bool, displaced *Item)

	// AddUnsafe размещает предмет по координате, уже записанной в Item,
	// пропуская проверку коллизий. Путь загрузки из БД. Ошибка только
	// если карман структурно не подходит записанной позиции.
	AddUnsafe(item *Item) error

	// Remove удаляет конкретный экземпляр. false если предмета нет.
	Remove(item *Item) bool

	// RemoveCount списывает до amount единиц предметов указанного
	// шаблона в порядке итерации кармана. Возвращает фактически
	// списанное количество и списки предметов для отчёта дельт:
	// changed — количество изменилось, removed — предмет удалён
	// (количество достигло нуля, кроме Sac).
	RemoveCount(templateID int32, amount uint32) (removed uint32, changed, gone []*Item)

	// ItemAt возвращает предмет, занимающий координату (nil если пусто).
	ItemAt(x, y int32) *Item

	// Item возвращает предмет по object ID (nil если нет).
	Item(objectID uint32) *Item

	// Has возвращает true, если карман содержит этот экземпляр.
	Has(item *Item) bool

	// Count возвращает суммарное количество предметов шаблона.
	Count(templateID int32) uint32

	// Items возвращает предметы в детерминированном порядке вставки
	// (копия, изменения среза не влияют на карман).
	Items() []*Item

	// FillStacks жадно доливает существующие стеки того же шаблона,
	// уменьшая количество у incoming. Возвращает изменённые стеки.
	FillStacks(incoming *Item) []*Item

	// FreeSlot возвращает первую свободную позицию под предмет.
	FreeSlot(item *Item) (x, y int32, ok bool)
}
