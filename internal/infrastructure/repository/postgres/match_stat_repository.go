package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/fantasy-companion/internal/domain/matchstat"
	qb "github.com/matchdayhq/fantasy-companion/internal/platform/querybuilder"
)

type MatchStatRepository struct {
	db *sqlx.DB
}

var _ matchstat.Repository = (*MatchStatRepository)(nil)

func NewMatchStatRepository(db *sqlx.DB) *MatchStatRepository {
	return &MatchStatRepository{db: db}
}

// ReplaceForGameweek drops every stat row for the gameweek before inserting
// the new batch, so a re-entry fully supersedes the previous one.
func (r *MatchStatRepository) ReplaceForGameweek(ctx context.Context, gameweekID string, stats []matchstat.Stat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace stats tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("player_match_stats").
		Where(qb.Eq("gameweek_id", gameweekID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete stats for gameweek: %w", err)
	}

	if len(stats) > 0 {
		builder := qb.InsertInto("player_match_stats").
			Columns("gameweek_id", "player_id", "played", "goals", "assists", "yellow_cards", "red_cards")
		for _, stat := range stats {
			builder = builder.Values(gameweekID, stat.PlayerID, stat.Played, stat.Goals, stat.Assists, stat.YellowCards, stat.RedCards)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert stats for gameweek: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace stats tx: %w", err)
	}
	return nil
}

func (r *MatchStatRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]matchstat.Stat, error) {
	query, args, err := qb.Select("*").
		From("player_match_stats").
		Where(qb.Eq("gameweek_id", gameweekID)).
		OrderBy("player_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stats query: %w", err)
	}

	var rows []matchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stats by gameweek: %w", err)
	}

	out := make([]matchstat.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchstat.Stat{
			GameweekID:  row.GameweekID,
			PlayerID:    row.PlayerID,
			Played:      row.Played,
			Goals:       row.Goals,
			Assists:     row.Assists,
			YellowCards: row.YellowCards,
			RedCards:    row.RedCards,
		})
	}
	return out, nil
}

func (r *MatchStatRepository) ListGameweekIDsWithStats(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("DISTINCT gameweek_id").
		From("player_match_stats").
		OrderBy("gameweek_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stat gameweeks query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list gameweeks with stats: %w", err)
	}
	return ids, nil
}
