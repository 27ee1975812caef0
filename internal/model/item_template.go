package model

// ItemTemplate — шаблон предмета: статические данные, общие для всех
// экземпляров (политика стекования, размер стека, габариты в grid-кармане).
type ItemTemplate struct {
	TemplateID int32
	Name       string
	Policy     StackPolicy
	MaxStack   uint32 // максимальный размер одного стека (1 для Unique)
	Width      int32  // занимаемые ячейки в grid-кармане (>= 1)
	Height     int32
	Handler    string // имя item handler ("" — предмет не применяется)
}

// StackPolicy определяет, как экземпляры шаблона группируются в стеки.
type StackPolicy int32

const (
	// StackPolicyUnique — предмет не стекуется (оружие, броня).
	StackPolicyUnique StackPolicy = iota
	// StackPolicyStackable — одинаковые предметы сливаются в стек
	// до MaxStack (стрелы, зелья, золото).
	StackPolicyStackable
	// StackPolicySac — контейнер с зарядами: сам предмет постоянен,
	// количество может легитимно равняться нулю.
	StackPolicySac
)

// String returns human-readable stack policy name.
func (p StackPolicy) String() string {
	switch p {
	case StackPolicyUnique:
		return "Unique"
	case StackPolicyStackable:
		return "Stackable"
	case StackPolicySac:
		return "Sac"
	default:
		return "Unknown"
	}
}

// CanStack возвращает true, если экземпляры шаблона сливаются в стеки.
// Sac не сливается: это контейнер, а не группа одинаковых предметов.
func (t *ItemTemplate) CanStack() bool {
	return t.Policy == StackPolicyStackable
}

// IsSac возвращает true для контейнеров с зарядами.
func (t *ItemTemplate) IsSac() bool {
	return t.Policy == StackPolicySac
}

// GoldTemplateID — зарезервированный template ID игровой валюты.
// Валютный слой инвентаря (Gold/AddGold/RemoveGold) работает поверх
// обычных стеков этого шаблона.
const GoldTemplateID int32 = 1

// TemplateSource отдаёт шаблон предмета по template ID (nil если нет).
// Реализуется реестром шаблонов в internal/data.
type TemplateSource interface {
	Template(id int32) *ItemTemplate
}
