package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/openrealm/internal/data"
	"github.com/udisondev/openrealm/internal/model"
	"github.com/udisondev/openrealm/internal/testutil"
)

func newRepoItem(t *testing.T, objectID uint32, templateID int32, ownerID int64, count uint32, pocket model.PocketKind, x, y int32) *model.Item {
	t.Helper()
	tpl := data.Template(templateID)
	require.NotNil(t, tpl, "template %d", templateID)
	item, err := model.NewItem(objectID, tpl, ownerID, count)
	require.NoError(t, err)
	item.SetPlacement(pocket, x, y)
	return item
}

func TestItemRepositoryRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers test in -short mode")
	}
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	chars := NewCharacterRepository(pool)
	ownerID, err := chars.Create(ctx, "roundtrip", model.RaceHuman)
	require.NoError(t, err)

	repo := NewItemRepository(pool, data.Templates{})

	saved := []*model.Item{
		newRepoItem(t, 0x30000001, 100, ownerID, 1, model.PocketRightHand1, 0, 0),
		newRepoItem(t, 0x30000002, 10, ownerID, 50, model.PocketGeneral, 2, 3),
		newRepoItem(t, 0x30000003, 200, ownerID, 0, model.PocketGeneral, 4, 0), // empty sac
	}
	require.NoError(t, repo.SaveInventory(ctx, ownerID, saved))

	loaded, err := repo.LoadInventory(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	// ORDER BY object_id keeps the sequence deterministic.
	for i, want := range saved {
		got := loaded[i]
		assert.Equal(t, want.ObjectID(), got.ObjectID())
		assert.Equal(t, want.TemplateID(), got.TemplateID())
		assert.Equal(t, want.Count(), got.Count())
		assert.Equal(t, want.Pocket(), got.Pocket())
		wx, wy := want.Position()
		gx, gy := got.Position()
		assert.Equal(t, wx, gx)
		assert.Equal(t, wy, gy)
	}

	// Loaded items place back through Inventory.Load.
	inv := model.NewInventory(nil, nil, nil, data.Templates{})
	inv.InitMainStorage(6, 10)
	require.NoError(t, inv.Load(loaded))
	assert.NotNil(t, inv.RightHand())
	assert.Equal(t, uint64(50), inv.CountOf(10))
}

func TestItemRepositorySaveReplaces(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers test in -short mode")
	}
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	chars := NewCharacterRepository(pool)
	ownerID, err := chars.Create(ctx, "replacer", model.RaceElf)
	require.NoError(t, err)

	repo := NewItemRepository(pool, data.Templates{})

	first := []*model.Item{
		newRepoItem(t, 0x30000010, 100, ownerID, 1, model.PocketGeneral, 0, 0),
		newRepoItem(t, 0x30000011, 11, ownerID, 5, model.PocketGeneral, 1, 0),
	}
	require.NoError(t, repo.SaveInventory(ctx, ownerID, first))

	// Second save wins wholesale: no stale rows survive.
	second := []*model.Item{
		newRepoItem(t, 0x30000012, 102, ownerID, 1, model.PocketLeftHand1, 0, 0),
	}
	require.NoError(t, repo.SaveInventory(ctx, ownerID, second))

	loaded, err := repo.LoadInventory(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, uint32(0x30000012), loaded[0].ObjectID())
}

func TestItemRepositorySkipsUnknownTemplates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers test in -short mode")
	}
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	chars := NewCharacterRepository(pool)
	ownerID, err := chars.Create(ctx, "stale", model.RaceDwarf)
	require.NoError(t, err)

	// Row with a template that is no longer registered.
	_, err = pool.Exec(ctx,
		`INSERT INTO items (object_id, owner_id, template_id, count, pocket, x, y)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		int64(0x30000020), ownerID, int32(424242), int64(1), int32(model.PocketGeneral), 0, 0,
	)
	require.NoError(t, err)

	repo := NewItemRepository(pool, data.Templates{})
	loaded, err := repo.LoadInventory(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, loaded, "stale content must be skipped, not fatal")
}

func TestItemRepositoryMaxObjectID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers test in -short mode")
	}
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	repo := NewItemRepository(pool, data.Templates{})

	maxID, err := repo.MaxObjectID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), maxID, "empty table")

	chars := NewCharacterRepository(pool)
	ownerID, err := chars.Create(ctx, "maxid", model.RaceOrc)
	require.NoError(t, err)

	items := []*model.Item{
		newRepoItem(t, 0x30000030, 100, ownerID, 1, model.PocketGeneral, 0, 0),
		newRepoItem(t, 0x30000555, 11, ownerID, 3, model.PocketGeneral, 1, 0),
	}
	require.NoError(t, repo.SaveInventory(ctx, ownerID, items))

	maxID, err = repo.MaxObjectID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x30000555), maxID)
}

func TestItemRepositoryDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers test in -short mode")
	}
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	chars := NewCharacterRepository(pool)
	ownerID, err := chars.Create(ctx, "deleter", model.RaceGiant)
	require.NoError(t, err)

	repo := NewItemRepository(pool, data.Templates{})
	require.NoError(t, repo.SaveInventory(ctx, ownerID, []*model.Item{
		newRepoItem(t, 0x30000040, 100, ownerID, 1, model.PocketGeneral, 0, 0),
	}))

	require.NoError(t, repo.Delete(ctx, 0x30000040))
	assert.Error(t, repo.Delete(ctx, 0x30000040), "second delete reports missing row")
}

func TestCharacterRepositoryActiveSet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers test in -short mode")
	}
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()

	chars := NewCharacterRepository(pool)
	id, err := chars.Create(ctx, "setswitcher", model.RaceHuman)
	require.NoError(t, err)

	set, err := chars.ActiveSet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int32(1), set, "default set")

	require.NoError(t, chars.UpdateActiveSet(ctx, id, 2))
	set, err = chars.ActiveSet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int32(2), set)

	// Duplicate names are rejected by the schema.
	_, err = chars.Create(ctx, "setswitcher", model.RaceHuman)
	assert.Error(t, err)
}
