package gateway

import "github.com/udisondev/openrealm/internal/model"

// Notifier — адаптер model.Notifier поверх hub: переводит батчи дельт
// инвентаря в JSON-сообщения клиенту владельца. Ядро модели не знает
// о websocket; вся трансляция — здесь.
type Notifier struct {
	hub *Hub
}

// NewNotifier создаёт адаптер поверх hub.
func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

// Notify доставляет батч дельт клиенту владельца. Порядок событий в
// батче равен порядку шагов операции.
func (n *Notifier) Notify(ownerID int64, events []model.ChangeEvent) {
	msg := updateMessage{Type: "inventory_update", Events: make([]eventPayload, 0, len(events))}
	for _, ev := range events {
		msg.Events = append(msg.Events, translateEvent(ev))
	}
	n.hub.Send(ownerID, msg)
}

func translateEvent(ev model.ChangeEvent) eventPayload {
	switch ev.Type {
	case model.EventItemAdded:
		return eventPayload{Type: "item_added", Item: newItemPayload(ev.Item)}
	case model.EventItemRemoved:
		return eventPayload{Type: "item_removed", Item: newItemPayload(ev.Item)}
	case model.EventItemAmountChanged:
		return eventPayload{Type: "item_amount_changed", Item: newItemPayload(ev.Item)}
	case model.EventItemMoved:
		return eventPayload{
			Type:      "item_moved",
			Item:      newItemPayload(ev.Item),
			Source:    ev.Source.String(),
			Target:    ev.Target.String(),
			Displaced: newItemPayload(ev.Displaced),
		}
	case model.EventEquipmentVacated:
		return eventPayload{Type: "equipment_vacated", Pocket: ev.Kind.String()}
	case model.EventEquipmentChanged:
		return eventPayload{Type: "equipment_changed", Item: newItemPayload(ev.Item)}
	case model.EventPocketReplaced:
		return eventPayload{Type: "pocket_replaced", Pocket: ev.Kind.String()}
	default:
		return eventPayload{Type: "unknown"}
	}
}
