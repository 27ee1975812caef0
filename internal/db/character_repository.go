package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/openrealm/internal/model"
)

// CharacterRepository управляет персонажами в БД.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create создаёт персонажа и возвращает его character ID.
func (r *CharacterRepository) Create(ctx context.Context, name string, race model.Race) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO characters (name, race) VALUES ($1, $2) RETURNING character_id`,
		name, int32(race),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating character %q: %w", name, err)
	}
	return id, nil
}

// UpdateActiveSet сохраняет активный weapon set персонажа.
func (r *CharacterRepository) UpdateActiveSet(ctx context.Context, characterID int64, set int32) error {
	_, err := r.db.Exec(ctx,
		`UPDATE characters SET active_set = $1 WHERE character_id = $2`,
		set, characterID,
	)
	if err != nil {
		return fmt.Errorf("updating active set for character %d: %w", characterID, err)
	}
	return nil
}

// ActiveSet возвращает сохранённый активный weapon set персонажа.
func (r *CharacterRepository) ActiveSet(ctx context.Context, characterID int64) (int32, error) {
	var set int32
	err := r.db.QueryRow(ctx,
		`SELECT active_set FROM characters WHERE character_id = $1`, characterID,
	).Scan(&set)
	if err != nil {
		return 0, fmt.Errorf("querying active set for character %d: %w", characterID, err)
	}
	return set, nil
}
