package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
	qb "github.com/matchdayhq/fantasy-companion/internal/platform/querybuilder"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").
		From("players").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, error) {
	query, args, err := qb.Select("*").
		From("players").
		Where(qb.Eq("id", playerID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("%w: player %s", usecase.ErrNotFound, playerID)
		}
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}

	return playerFromRow(row), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	values := make([]any, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		values = append(values, playerID)
	}

	query, args, err := qb.Select("*").
		From("players").
		Where(qb.In("id", values), qb.IsNull("deleted_at")).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	}, "")
	if err != nil {
		return fmt.Errorf("build create player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	query, args, err := qb.Update("players").
		Set("name", p.Name).
		Set("position", p.Position).
		Set("price", p.Price).
		Set("image_url", p.ImageURL).
		SetExpr("updated_at", "EXTRACT(EPOCH FROM NOW())::BIGINT").
		Where(qb.Eq("id", p.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: player %s", usecase.ErrNotFound, p.ID)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	query, args, err := qb.Update("players").
		SetExpr("deleted_at", "EXTRACT(EPOCH FROM NOW())::BIGINT").
		Where(qb.Eq("id", playerID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: player %s", usecase.ErrNotFound, playerID)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.ID,
		Name:     row.Name,
		Position: row.Position,
		Price:    row.Price,
		ImageURL: row.ImageURL,
	}
}
