package gateway

import "github.com/udisondev/openrealm/internal/model"

// itemPayload — клиентское представление предмета.
type itemPayload struct {
	ObjectID   uint32 `json:"object_id"`
	TemplateID int32  `json:"template_id"`
	Name       string `json:"name"`
	Count      uint32 `json:"count"`
	Pocket     string `json:"pocket"`
	X          int32  `json:"x"`
	Y          int32  `json:"y"`
}

func newItemPayload(it *model.Item) *itemPayload {
	if it == nil {
		return nil
	}
	x, y := it.Position()
	return &itemPayload{
		ObjectID:   it.ObjectID(),
		TemplateID: it.TemplateID(),
		Name:       it.Name(),
		Count:      it.Count(),
		Pocket:     it.Pocket().String(),
		X:          x,
		Y:          y,
	}
}

// eventPayload — одна клиентская дельта инвентаря.
type eventPayload struct {
	Type      string       `json:"type"`
	Item      *itemPayload `json:"item,omitempty"`
	Source    string       `json:"source,omitempty"`
	Target    string       `json:"target,omitempty"`
	Displaced *itemPayload `json:"displaced,omitempty"`
	Pocket    string       `json:"pocket,omitempty"`
}

// updateMessage — батч дельт одной операции инвентаря.
type updateMessage struct {
	Type   string         `json:"type"` // "inventory_update"
	Events []eventPayload `json:"events"`
}

// commandMessage — команда клиента.
type commandMessage struct {
	Type string `json:"type"`

	// move
	ObjectID uint32 `json:"object_id,omitempty"`
	Pocket   string `json:"pocket,omitempty"`
	X        int32  `json:"x,omitempty"`
	Y        int32  `json:"y,omitempty"`

	// switch_set
	Set int32 `json:"set,omitempty"`

	// grant (admin)
	TemplateID int32  `json:"template_id,omitempty"`
	Count      uint32 `json:"count,omitempty"`

	// pickup / drop / use
	GroundID uint32 `json:"ground_id,omitempty"`
}

// resultMessage — ответ на команду.
type resultMessage struct {
	Type    string `json:"type"` // "result"
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// pocketKindByName разрешает имя кармана из команды клиента.
func pocketKindByName(name string) (model.PocketKind, bool) {
	for kind := model.PocketCursor; kind < model.PocketKindCount; kind++ {
		if kind.String() == name {
			return kind, true
		}
	}
	return model.PocketNone, false
}
