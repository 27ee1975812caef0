package itemhandler

import "github.com/udisondev/openrealm/internal/model"

// consumableHandler handles single-use consumables (potions etc):
// one unit is removed per use, the stack disappears at zero.
type consumableHandler struct{}

func (h *consumableHandler) UseItem(user *model.Creature, item *model.Item) *UseResult {
	if user == nil || item == nil {
		return nil
	}
	inv := user.Inventory()
	if !inv.Decrement(item, 1) {
		return nil
	}
	return &UseResult{Consumed: 1, Depleted: item.Count() == 0}
}
