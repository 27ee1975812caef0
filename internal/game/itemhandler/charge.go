package itemhandler

import "github.com/udisondev/openrealm/internal/model"

// chargeHandler handles charge containers (quivers, powder sacs):
// each use spends one charge. The container itself is permanent, so
// at zero charges it stays in the inventory empty instead of vanishing.
type chargeHandler struct{}

func (h *chargeHandler) UseItem(user *model.Creature, item *model.Item) *UseResult {
	if user == nil || item == nil {
		return nil
	}
	if !item.Template().IsSac() {
		return nil
	}
	inv := user.Inventory()
	if !inv.Decrement(item, 1) {
		return nil
	}
	return &UseResult{Consumed: 1, Depleted: item.Count() == 0}
}
