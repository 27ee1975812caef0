package data

import "github.com/udisondev/openrealm/internal/model"

// templateTable хранит все шаблоны предметов, индекс — template ID.
// Заполняется базовым набором в init; игровой контент догружается через
// RegisterTemplate при старте сервера.
var templateTable map[int32]*model.ItemTemplate

// GoldStackMax — per-stack лимит валюты. Депозиты больше лимита
// прозрачно раскладываются инвентарём на несколько стеков.
const GoldStackMax uint32 = 1000

func init() {
	templateTable = map[int32]*model.ItemTemplate{}
	for _, t := range []*model.ItemTemplate{
		{TemplateID: model.GoldTemplateID, Name: "Gold", Policy: model.StackPolicyStackable, MaxStack: GoldStackMax, Width: 1, Height: 1},

		// Расходники.
		{TemplateID: 10, Name: "Arrow", Policy: model.StackPolicyStackable, MaxStack: 50, Width: 1, Height: 1},
		{TemplateID: 11, Name: "Health Potion", Policy: model.StackPolicyStackable, MaxStack: 20, Width: 1, Height: 1, Handler: "Consumable"},
		{TemplateID: 12, Name: "Mana Potion", Policy: model.StackPolicyStackable, MaxStack: 20, Width: 1, Height: 1, Handler: "Consumable"},
		{TemplateID: 13, Name: "Throwing Knife", Policy: model.StackPolicyStackable, MaxStack: 30, Width: 1, Height: 1},

		// Оружие и щиты.
		{TemplateID: 100, Name: "Short Sword", Policy: model.StackPolicyUnique, MaxStack: 1, Width: 1, Height: 3},
		{TemplateID: 101, Name: "Long Bow", Policy: model.StackPolicyUnique, MaxStack: 1, Width: 2, Height: 4},
		{TemplateID: 102, Name: "Wooden Shield", Policy: model.StackPolicyUnique, MaxStack: 1, Width: 2, Height: 3},
		{TemplateID: 103, Name: "War Hammer", Policy: model.StackPolicyUnique, MaxStack: 1, Width: 2, Height: 4},
		{TemplateID: 104, Name: "Dagger", Policy: model.StackPolicyUnique, MaxStack: 1, Width: 1, Height: 2},

		// Броня.
		{TemplateID: 150, Name: "Leather Tunic", Policy: model.StackPolicyUnique, MaxStack: 1, Width: 2, Height: 3},
		{TemplateID: 151, Name: "Iron Helm", Policy: model.StackPolicyUnique, MaxStack: 1, Width: 2, Height: 2},
		{TemplateID: 152, Name: "Travel Boots", Policy: model.StackPolicyUnique, MaxStack: 1, Width: 2, Height: 2},

		// Контейнеры с зарядами: сам предмет постоянен, количество
		// может дойти до нуля и остаться нулём.
		{TemplateID: 200, Name: "Quiver", Policy: model.StackPolicySac, MaxStack: 100, Width: 1, Height: 2, Handler: "Charge"},
		{TemplateID: 201, Name: "Powder Sac", Policy: model.StackPolicySac, MaxStack: 50, Width: 1, Height: 1, Handler: "Charge"},
	} {
		templateTable[t.TemplateID] = t
	}
}

// Template возвращает шаблон по template ID (nil если не зарегистрирован).
func Template(id int32) *model.ItemTemplate {
	return templateTable[id]
}

// RegisterTemplate добавляет или заменяет шаблон. Вызывается на старте
// при загрузке игрового контента, до запуска игровых потоков.
func RegisterTemplate(t *model.ItemTemplate) {
	templateTable[t.TemplateID] = t
}

// Templates — адаптер реестра под model.TemplateSource.
type Templates struct{}

// Template возвращает шаблон по template ID.
func (Templates) Template(id int32) *model.ItemTemplate {
	return Template(id)
}
