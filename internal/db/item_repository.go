package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/openrealm/internal/model"
)

// ItemRepository управляет предметами в БД. Хранится ровно то, что нужно
// для round-trip через AddUnsafe: identity, шаблон, количество, карман и
// координата.
type ItemRepository struct {
	db        *pgxpool.Pool
	templates model.TemplateSource
}

// NewItemRepository создаёт новый ItemRepository.
func NewItemRepository(db *pgxpool.Pool, templates model.TemplateSource) *ItemRepository {
	return &ItemRepository{db: db, templates: templates}
}

// LoadInventory загружает все предметы персонажа. Позиция записывается в
// Item, размещение по карманам делает Inventory.Load через AddUnsafe.
// Предметы с незарегистрированным шаблоном пропускаются с warning:
// устаревший контент не должен ронять загрузку персонажа.
func (r *ItemRepository) LoadInventory(ctx context.Context, ownerID int64) ([]*model.Item, error) {
	query := `
		SELECT object_id, owner_id, template_id, count, pocket, x, y
		FROM items
		WHERE owner_id = $1
		ORDER BY object_id
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying inventory for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	items := make([]*model.Item, 0, 50)

	for rows.Next() {
		var objectID int64
		var ownerIDDB int64
		var templateID int32
		var count int64
		var pocket int32
		var x, y int32

		if err := rows.Scan(&objectID, &ownerIDDB, &templateID, &count, &pocket, &x, &y); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}

		tpl := r.templates.Template(templateID)
		if tpl == nil {
			slog.Warn("skipping item with unknown template", "object_id", objectID, "template_id", templateID)
			continue
		}

		item, err := model.NewItem(uint32(objectID), tpl, ownerIDDB, uint32(count))
		if err != nil {
			return nil, fmt.Errorf("creating item model %d: %w", objectID, err)
		}
		item.SetPlacement(model.PocketKind(pocket), x, y)

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

// SaveInventory атомарно заменяет сохранённые предметы персонажа текущим
// состоянием инвентаря (delete + batch insert в одной транзакции).
func (r *ItemRepository) SaveInventory(ctx context.Context, ownerID int64, items []*model.Item) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for owner %d: %w", ownerID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			slog.Error("rollback failed", "owner", ownerID, "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM items WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("clearing items for owner %d: %w", ownerID, err)
	}

	batch := &pgx.Batch{}
	for _, it := range items {
		x, y := it.Position()
		batch.Queue(
			`INSERT INTO items (object_id, owner_id, template_id, count, pocket, x, y)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			int64(it.ObjectID()), ownerID, it.TemplateID(), int64(it.Count()), int32(it.Pocket()), x, y,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("inserting items for owner %d: %w", ownerID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing batch for owner %d: %w", ownerID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing items for owner %d: %w", ownerID, err)
	}
	return nil
}

// MaxObjectID возвращает максимальный сохранённый object ID (0 если
// предметов нет). Используется для поднятия счётчика генератора ID
// после загрузки.
func (r *ItemRepository) MaxObjectID(ctx context.Context) (uint32, error) {
	var maxID int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(object_id), 0) FROM items`).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("querying max object id: %w", err)
	}
	return uint32(maxID), nil
}

// Delete удаляет предмет из БД.
func (r *ItemRepository) Delete(ctx context.Context, objectID uint32) error {
	result, err := r.db.Exec(ctx, `DELETE FROM items WHERE object_id = $1`, int64(objectID))
	if err != nil {
		return fmt.Errorf("deleting item %d: %w", objectID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %d not found", objectID)
	}
	return nil
}
