// Package itemhandler implements the item use handler system.
// Each handler name (from the item template) maps to an ItemHandler
// implementation.
package itemhandler

import "github.com/udisondev/openrealm/internal/model"

// UseResult describes the outcome of an item use.
type UseResult struct {
	Consumed uint32 // charges or units spent by the use
	Depleted bool   // true when the stack reached zero
}

// ItemHandler processes UseItem for a specific handler type.
type ItemHandler interface {
	// UseItem processes item usage and returns the result.
	// Returns nil if the item cannot be used.
	UseItem(user *model.Creature, item *model.Item) *UseResult
}

// registry maps handler name -> ItemHandler implementation.
var registry = map[string]ItemHandler{}

// Register adds a handler to the registry.
func Register(name string, h ItemHandler) {
	registry[name] = h
}

// Get returns the handler for the given name, or nil if not registered.
func Get(name string) ItemHandler {
	return registry[name]
}

// Init registers all built-in item handlers.
func Init() {
	Register("Consumable", &consumableHandler{})
	Register("Charge", &chargeHandler{})
}
