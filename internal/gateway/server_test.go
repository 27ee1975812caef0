package gateway

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/openrealm/internal/data"
	"github.com/udisondev/openrealm/internal/game/itemhandler"
	"github.com/udisondev/openrealm/internal/model"
	"github.com/udisondev/openrealm/internal/world"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	itemhandler.Init()
	return NewServer(NewHub(), world.NewGround(), world.NewObjectIDGenerator(), data.Templates{}, nil, nil)
}

// TestSaveAllSerializedWithCommands: у инвентаря нет внутренних замков,
// поэтому persist loop и read loop обязаны сериализоваться на замке
// сессии. Под -race несериализованный снимок здесь ловится как гонка.
func TestSaveAllSerializedWithCommands(t *testing.T) {
	s := newTestServer(t)
	sess, err := s.attach(context.Background(), 1, "racer", model.RaceHuman)
	require.NoError(t, err)

	const deposits = 500
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < deposits; i++ {
			res := s.dispatchCommand(sess, commandMessage{Type: "gold", Count: 7})
			assert.True(t, res.OK)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < deposits; i++ {
			s.SaveAll(context.Background())
		}
	}()
	wg.Wait()

	sess.mu.Lock()
	gold := sess.creature.Inventory().Gold()
	sess.mu.Unlock()
	assert.Equal(t, uint64(deposits*7), gold)
}

func TestAttachRefusesDuplicate(t *testing.T) {
	s := newTestServer(t)
	sess, err := s.attach(context.Background(), 7, "first", model.RaceHuman)
	require.NoError(t, err)

	// Второй read loop того же персонажа означал бы второго мутатора.
	_, err = s.attach(context.Background(), 7, "second", model.RaceHuman)
	require.ErrorIs(t, err, errAlreadyAttached)

	// После отсоединения персонаж подключается снова.
	s.detach(context.Background(), sess)
	_, err = s.attach(context.Background(), 7, "first", model.RaceHuman)
	require.NoError(t, err)
}
