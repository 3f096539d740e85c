package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	qb "github.com/matchdayhq/fantasy-companion/internal/platform/querybuilder"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

type PickRepository struct {
	db *sqlx.DB
}

var _ fantasy.Repository = (*PickRepository)(nil)

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) Upsert(ctx context.Context, pick fantasy.Pick) error {
	if err := pick.ValidateBasic(); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	query, args, err := qb.InsertModel("fantasy_picks", pickInsertModel{
		ProfileID:   pick.ProfileID,
		GameweekID:  pick.GameweekID,
		Player1ID:   pick.PlayerIDs[0],
		Player2ID:   pick.PlayerIDs[1],
		Player3ID:   pick.PlayerIDs[2],
		Player4ID:   pick.PlayerIDs[3],
		CaptainSlot: pick.CaptainSlot,
		UpdatedAt:   timeToUnix(pick.UpdatedAt),
	}, `ON CONFLICT (profile_id, gameweek_id) WHERE deleted_at IS NULL
DO UPDATE SET
    player_1_id = EXCLUDED.player_1_id,
    player_2_id = EXCLUDED.player_2_id,
    player_3_id = EXCLUDED.player_3_id,
    player_4_id = EXCLUDED.player_4_id,
    captain_slot = EXCLUDED.captain_slot,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert pick: %w", err)
	}
	return nil
}

func (r *PickRepository) GetByProfileAndGameweek(ctx context.Context, profileID, gameweekID string) (fantasy.Pick, error) {
	query, args, err := qb.Select("*").
		From("fantasy_picks").
		Where(
			qb.Eq("profile_id", profileID),
			qb.Eq("gameweek_id", gameweekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fantasy.Pick{}, fmt.Errorf("build get pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Pick{}, fmt.Errorf("%w: pick profile=%s gameweek=%s", usecase.ErrNotFound, profileID, gameweekID)
		}
		return fantasy.Pick{}, fmt.Errorf("get pick: %w", err)
	}

	return pickFromRow(row), nil
}

func (r *PickRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]fantasy.Pick, error) {
	query, args, err := qb.Select("*").
		From("fantasy_picks").
		Where(qb.Eq("gameweek_id", gameweekID), qb.IsNull("deleted_at")).
		OrderBy("profile_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks by gameweek: %w", err)
	}

	out := make([]fantasy.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func pickFromRow(row pickTableModel) fantasy.Pick {
	return fantasy.Pick{
		ProfileID:   row.ProfileID,
		GameweekID:  row.GameweekID,
		PlayerIDs:   []string{row.Player1ID, row.Player2ID, row.Player3ID, row.Player4ID},
		CaptainSlot: row.CaptainSlot,
		UpdatedAt:   unixToTime(row.UpdatedAt),
	}
}
