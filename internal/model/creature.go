package model

// Race — раса персонажа. Определяет size-class и, через него,
// размеры основных карманов (таблица в internal/data).
type Race int32

const (
	RaceHuman Race = iota
	RaceElf
	RaceDwarf
	RaceOrc
	RaceGiant
)

// String returns human-readable race name.
func (r Race) String() string {
	switch r {
	case RaceHuman:
		return "Human"
	case RaceElf:
		return "Elf"
	case RaceDwarf:
		return "Dwarf"
	case RaceOrc:
		return "Orc"
	case RaceGiant:
		return "Giant"
	default:
		return "Unknown"
	}
}

// Creature — актор-владелец инвентаря. Инвентарь создаётся вместе с
// актором и умирает вместе с ним; все мутации инвентаря идут через его
// публичные операции в единственном логическом потоке актора.
type Creature struct {
	objectID  uint32
	charID    int64
	name      string
	race      Race
	inventory *Inventory
}

// NewCreature создаёт актора и его инвентарь с дефолтными карманами
// (курсор, временный, вся экипировка). Основные сумки добавляются позже
// через InitMainStorage, когда известны размеры size-class.
func NewCreature(objectID uint32, charID int64, name string, race Race, notifier Notifier, nextID func() uint32, templates TemplateSource) *Creature {
	c := &Creature{
		objectID: objectID,
		charID:   charID,
		name:     name,
		race:     race,
	}
	c.inventory = NewInventory(c, notifier, nextID, templates)
	return c
}

// ObjectID возвращает unique ID актора в мире.
func (c *Creature) ObjectID() uint32 { return c.objectID }

// CharacterID возвращает character ID (ключ персистентности).
func (c *Creature) CharacterID() int64 { return c.charID }

// Name возвращает имя актора.
func (c *Creature) Name() string { return c.name }

// Race возвращает расу актора.
func (c *Creature) Race() Race { return c.race }

// Inventory возвращает инвентарь актора.
func (c *Creature) Inventory() *Inventory { return c.inventory }
