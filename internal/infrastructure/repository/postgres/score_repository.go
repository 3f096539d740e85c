package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/domain/scoring"
	qb "github.com/matchdayhq/fantasy-companion/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

var _ scoring.Repository = (*ScoreRepository)(nil)

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// ReplaceForGameweek drops every score row for the gameweek before
// inserting the new batch, so profiles absent from a recalculation do
// not keep stale rows.
func (r *ScoreRepository) ReplaceForGameweek(ctx context.Context, gameweekID string, scores []scoring.Score) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace scores tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("fantasy_scores").
		Where(qb.Eq("gameweek_id", gameweekID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete scores for gameweek: %w", err)
	}

	if len(scores) > 0 {
		builder := qb.InsertInto("fantasy_scores").
			Columns("profile_id", "gameweek_id", "slot_1_points", "slot_2_points", "slot_3_points", "slot_4_points", "captain_bonus", "total_points", "calculated_at")
		for _, score := range scores {
			builder = builder.Values(
				score.ProfileID,
				gameweekID,
				score.SlotPoints[0],
				score.SlotPoints[1],
				score.SlotPoints[2],
				score.SlotPoints[3],
				score.CaptainBonus,
				score.TotalPoints,
				timeToUnix(score.CalculatedAt),
			)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert scores for gameweek: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace scores tx: %w", err)
	}
	return nil
}

func (r *ScoreRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]scoring.Score, error) {
	return r.list(ctx, qb.Eq("gameweek_id", gameweekID))
}

func (r *ScoreRepository) ListByProfile(ctx context.Context, profileID string) ([]scoring.Score, error) {
	return r.list(ctx, qb.Eq("profile_id", profileID))
}

func (r *ScoreRepository) TotalsAcrossGameweeks(ctx context.Context) ([]scoring.ProfileTotal, error) {
	query, args, err := qb.Select("profile_id", "SUM(total_points)::INT AS total_points").
		From("fantasy_scores").
		GroupBy("profile_id").
		OrderBy("profile_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build score totals query: %w", err)
	}

	var rows []profileTotalRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sum scores across gameweeks: %w", err)
	}

	out := make([]scoring.ProfileTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.ProfileTotal{ProfileID: row.ProfileID, Points: row.TotalPoints})
	}
	return out, nil
}

func (r *ScoreRepository) list(ctx context.Context, cond qb.Condition) ([]scoring.Score, error) {
	query, args, err := qb.Select("*").
		From("fantasy_scores").
		Where(cond).
		OrderBy("gameweek_id ASC", "profile_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	out := make([]scoring.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoreFromRow(row))
	}
	return out, nil
}

func scoreFromRow(row scoreTableModel) scoring.Score {
	return scoring.Score{
		ProfileID:    row.ProfileID,
		GameweekID:   row.GameweekID,
		SlotPoints:   [fantasy.RosterSize]int{row.Slot1Points, row.Slot2Points, row.Slot3Points, row.Slot4Points},
		CaptainBonus: row.CaptainBonus,
		TotalPoints:  row.TotalPoints,
		CalculatedAt: unixToTime(row.CalculatedAt),
	}
}
