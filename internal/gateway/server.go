package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/udisondev/openrealm/internal/data"
	"github.com/udisondev/openrealm/internal/db"
	"github.com/udisondev/openrealm/internal/game/itemhandler"
	"github.com/udisondev/openrealm/internal/model"
	"github.com/udisondev/openrealm/internal/world"
)

// Server — websocket-шлюз инвентаря: принимает команды клиента,
// исполняет их на инвентаре персонажа и шлёт дельты через Notifier.
//
// Инвентарь не имеет внутренних замков, поэтому контракт единственного
// мутатора обеспечивает шлюз: команды read loop'а и снимки persist
// loop'а сериализуются на замке сессии, а повторное подключение того же
// персонажа отклоняется, пока живо первое.
type Server struct {
	hub       *Hub
	notifier  *Notifier
	ground    *world.Ground
	ids       *world.ObjectIDGenerator
	templates model.TemplateSource

	// Репозитории опциональны: без БД шлюз работает в эфемерном режиме.
	items *db.ItemRepository
	chars *db.CharacterRepository

	mu       sync.Mutex
	sessions map[int64]*session
}

// session — активный персонаж и замок доступа к его инвентарю.
type session struct {
	creature *model.Creature

	// Сериализует read loop соединения и persist loop между собой.
	mu sync.Mutex
}

var errAlreadyAttached = errors.New("character already attached")

// NewServer создаёт шлюз.
func NewServer(hub *Hub, ground *world.Ground, ids *world.ObjectIDGenerator, templates model.TemplateSource, items *db.ItemRepository, chars *db.CharacterRepository) *Server {
	return &Server{
		hub:       hub,
		notifier:  NewNotifier(hub),
		ground:    ground,
		ids:       ids,
		templates: templates,
		items:     items,
		chars:     chars,
		sessions:  make(map[int64]*session),
	}
}

// Handler возвращает HTTP-роутер шлюза.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	charID, err := strconv.ParseInt(r.URL.Query().Get("character_id"), 10, 64)
	if err != nil || charID <= 0 {
		http.Error(w, "character_id required", http.StatusBadRequest)
		return
	}
	name := r.URL.Query().Get("name")
	race := model.RaceHuman
	if v, err := strconv.ParseInt(r.URL.Query().Get("race"), 10, 32); err == nil {
		race = model.Race(v)
	}

	sess, err := s.attach(r.Context(), charID, name, race)
	if err != nil {
		slog.Warn("attaching character", "character", charID, "err", err)
		if errors.Is(err, errAlreadyAttached) {
			http.Error(w, "character already attached", http.StatusConflict)
		} else {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "err", err)
		s.detach(context.Background(), sess)
		return
	}
	s.hub.Subscribe(charID, conn)
	slog.Info("character attached", "character", charID, "name", name)

	defer func() {
		s.hub.Unsubscribe(charID)
		s.detach(context.Background(), sess)
		conn.Close()
	}()

	for {
		var cmd commandMessage
		if err := conn.ReadJSON(&cmd); err != nil {
			slog.Debug("connection closed", "character", charID, "err", err)
			return
		}
		s.hub.Send(charID, s.dispatchCommand(sess, cmd))
	}
}

// dispatchCommand исполняет команду под замком сессии.
func (s *Server) dispatchCommand(sess *session, cmd commandMessage) resultMessage {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.execute(sess.creature, cmd)
}

// attach создаёт сессию персонажа вместе с инвентарём. Пока сессия
// жива, повторный attach того же персонажа отклоняется: второй read
// loop означал бы второго мутатора инвентаря.
func (s *Server) attach(ctx context.Context, charID int64, name string, race model.Race) (*session, error) {
	s.mu.Lock()
	if _, ok := s.sessions[charID]; ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("character %d: %w", charID, errAlreadyAttached)
	}
	s.mu.Unlock()

	c := model.NewCreature(s.ids.NextCreatureID(), charID, name, race, s.notifier, s.ids.NextItemID, s.templates)
	w, h, ok := data.PocketDimensions(race)
	if !ok {
		w, h = 0, 0
	}
	c.Inventory().InitMainStorage(w, h)

	if s.items != nil {
		items, err := s.items.LoadInventory(ctx, charID)
		if err != nil {
			return nil, err
		}
		if err := c.Inventory().Load(items); err != nil {
			return nil, err
		}
	}
	if s.chars != nil {
		if set, err := s.chars.ActiveSet(ctx, charID); err == nil {
			c.Inventory().SwitchWeaponSet(set)
		}
	}

	sess := &session{creature: c}
	s.mu.Lock()
	if _, ok := s.sessions[charID]; ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("character %d: %w", charID, errAlreadyAttached)
	}
	s.sessions[charID] = sess
	s.mu.Unlock()
	return sess, nil
}

// detach сохраняет инвентарь и снимает сессию.
func (s *Server) detach(ctx context.Context, sess *session) {
	sess.mu.Lock()
	c := sess.creature
	charID := c.CharacterID()
	if s.items != nil {
		if err := s.items.SaveInventory(ctx, charID, c.Inventory().Items()); err != nil {
			slog.Error("saving inventory on detach", "character", charID, "err", err)
		}
	}
	if s.chars != nil {
		if err := s.chars.UpdateActiveSet(ctx, charID, c.Inventory().ActiveWeaponSet()); err != nil {
			slog.Error("saving active set on detach", "character", charID, "err", err)
		}
	}
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, charID)
	s.mu.Unlock()
	slog.Info("character detached", "character", charID)
}

// SaveAll сбрасывает инвентари всех активных сессий в БД. Снимок и
// запись идут под замком сессии: команды персонажа на время сохранения
// приостанавливаются, инвентарь без внутренних замков нельзя читать
// параллельно с read loop'ом.
func (s *Server) SaveAll(ctx context.Context) {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		charID := sess.creature.CharacterID()
		items := sess.creature.Inventory().Items()
		var err error
		if s.items != nil {
			err = s.items.SaveInventory(ctx, charID, items)
		}
		sess.mu.Unlock()
		if err != nil {
			slog.Error("persisting inventory", "character", charID, "err", err)
		}
	}
}

// execute выполняет команду на инвентаре актора и возвращает результат.
func (s *Server) execute(c *model.Creature, cmd commandMessage) resultMessage {
	inv := c.Inventory()
	res := resultMessage{Type: "result", Command: cmd.Type}

	switch cmd.Type {
	case "move":
		item := inv.GetItem(cmd.ObjectID)
		if item == nil {
			return fail(res, "item not found")
		}
		kind, ok := pocketKindByName(cmd.Pocket)
		if !ok {
			return fail(res, "unknown pocket")
		}
		res.OK = inv.Move(item, kind, cmd.X, cmd.Y)

	case "switch_set":
		res.OK = inv.SwitchWeaponSet(cmd.Set)

	case "grant":
		tpl := s.templates.Template(cmd.TemplateID)
		if tpl == nil {
			return fail(res, "unknown template")
		}
		item, err := model.NewItem(s.ids.NextItemID(), tpl, c.CharacterID(), cmd.Count)
		if err != nil {
			return fail(res, err.Error())
		}
		res.OK = inv.Insert(item, true)

	case "gold":
		res.OK = inv.AddGold(cmd.Count)

	case "pickup":
		res.OK = s.ground.PickUp(inv, cmd.GroundID)

	case "drop":
		item := inv.GetItem(cmd.ObjectID)
		if item == nil {
			return fail(res, "item not found")
		}
		if !inv.Remove(item) {
			return fail(res, "cannot remove")
		}
		s.ground.Drop(item, cmd.X, cmd.Y, c.ObjectID())
		res.OK = true

	case "use":
		item := inv.GetItem(cmd.ObjectID)
		if item == nil {
			return fail(res, "item not found")
		}
		h := itemhandler.Get(item.Template().Handler)
		if h == nil {
			return fail(res, "item cannot be used")
		}
		result := h.UseItem(c, item)
		res.OK = result != nil

	default:
		return fail(res, "unknown command")
	}
	return res
}

func fail(res resultMessage, msg string) resultMessage {
	res.OK = false
	res.Error = msg
	return res
}
