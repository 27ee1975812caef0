package model

import "fmt"

// Item — конкретный экземпляр предмета. Может лежать в кармане инвентаря,
// быть надетым (экипировочный карман) или находиться на земле (PocketNone).
//
// Object ID стабилен и не переиспользуется, пока экземпляр жив. Quantity
// больше нуля, пока предмет хранится в кармане; достигнув нуля, предмет
// удаляется (кроме Sac — контейнер остаётся с нулём зарядов).
//
// Item не содержит внутренних блокировок: инвентарь мутируется единственным
// логическим потоком владельца (см. Inventory).
type Item struct {
	objectID uint32
	ownerID  int64
	template *ItemTemplate
	count    uint32
	pocket   PocketKind
	x, y     int32
}

// NewItem создаёт экземпляр предмета.
//
// count может превышать MaxStack шаблона: лимит на стек применяется при
// размещении (Insert раскладывает излишек по нескольким стекам). Нулевое
// количество допустимо только для Sac.
func NewItem(objectID uint32, template *ItemTemplate, ownerID int64, count uint32) (*Item, error) {
	if template == nil {
		return nil, fmt.Errorf("item template cannot be nil")
	}
	if count == 0 && !template.IsSac() {
		return nil, fmt.Errorf("item count must be > 0 for policy %v", template.Policy)
	}

	return &Item{
		objectID: objectID,
		ownerID:  ownerID,
		template: template,
		count:    count,
		pocket:   PocketNone,
	}, nil
}

// ObjectID возвращает стабильный unique ID экземпляра.
func (i *Item) ObjectID() uint32 {
	return i.objectID
}

// OwnerID возвращает character ID владельца.
func (i *Item) OwnerID() int64 {
	return i.ownerID
}

// Template возвращает шаблон предмета (immutable).
func (i *Item) Template() *ItemTemplate {
	return i.template
}

// TemplateID возвращает template ID.
func (i *Item) TemplateID() int32 {
	return i.template.TemplateID
}

// Name возвращает название предмета из шаблона.
func (i *Item) Name() string {
	return i.template.Name
}

// Count возвращает текущее количество (размер стека либо заряды Sac).
func (i *Item) Count() uint32 {
	return i.count
}

// SetCount устанавливает количество. Контроль границ — на вызывающем:
// карманы и инвентарь следят за MaxStack и нулём сами.
func (i *Item) SetCount(count uint32) {
	i.count = count
}

// Pocket возвращает вид кармана, в котором лежит предмет
// (PocketNone — предмет вне инвентаря).
func (i *Item) Pocket() PocketKind {
	return i.pocket
}

// Position возвращает координату внутри кармана.
func (i *Item) Position() (x, y int32) {
	return i.x, i.y
}

// SetPlacement записывает карман и координату. Вызывается карманами при
// размещении и путём загрузки из БД перед AddUnsafe.
func (i *Item) SetPlacement(pocket PocketKind, x, y int32) {
	i.pocket = pocket
	i.x = x
	i.y = y
}

// ClearPlacement помечает предмет как находящийся вне инвентаря.
func (i *Item) ClearPlacement() {
	i.pocket = PocketNone
	i.x = 0
	i.y = 0
}

// Clone создаёт новый экземпляр с новой identity, тем же шаблоном и
// указанным количеством. Используется при разделении стека.
func (i *Item) Clone(objectID uint32, count uint32) *Item {
	return &Item{
		objectID: objectID,
		ownerID:  i.ownerID,
		template: i.template,
		count:    count,
		pocket:   PocketNone,
	}
}

// String returns a short debug representation.
func (i *Item) String() string {
	return fmt.Sprintf("Item{id=%d tpl=%d %q x%d %v(%d,%d)}",
		i.objectID, i.template.TemplateID, i.template.Name, i.count, i.pocket, i.x, i.y)
}
