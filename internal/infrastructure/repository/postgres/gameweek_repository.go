package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	qb "github.com/matchdayhq/fantasy-companion/internal/platform/querybuilder"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

type GameweekRepository struct {
	db *sqlx.DB
}

var _ gameweek.Repository = (*GameweekRepository)(nil)

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select("*").
		From("gameweeks").
		Where(qb.IsNull("deleted_at")).
		OrderBy("round_number ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweekFromRow(row))
	}
	return out, nil
}

func (r *GameweekRepository) GetByID(ctx context.Context, gameweekID string) (gameweek.Gameweek, error) {
	query, args, err := qb.Select("*").
		From("gameweeks").
		Where(qb.Eq("id", gameweekID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("build get gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek %s", usecase.ErrNotFound, gameweekID)
		}
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek: %w", err)
	}

	return gameweekFromRow(row), nil
}

func (r *GameweekRepository) NextUpcoming(ctx context.Context, now time.Time) (gameweek.Gameweek, error) {
	query, args, err := qb.Select("*").
		From("gameweeks").
		Where(
			qb.Expr("deadline_at > ?", timeToUnix(now)),
			qb.Eq("is_completed", false),
			qb.IsNull("deleted_at"),
		).
		OrderBy("deadline_at ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("build next upcoming gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, fmt.Errorf("%w: no upcoming gameweek", usecase.ErrNotFound)
		}
		return gameweek.Gameweek{}, fmt.Errorf("get next upcoming gameweek: %w", err)
	}

	return gameweekFromRow(row), nil
}

func (r *GameweekRepository) Create(ctx context.Context, gw gameweek.Gameweek) error {
	query, args, err := qb.InsertModel("gameweeks", gameweekInsertModel{
		ID:          gw.ID,
		RoundNumber: gw.RoundNumber,
		RoundName:   gw.RoundName,
		MatchDate:   timeToUnix(gw.MatchDate),
		DeadlineAt:  timeToUnix(gw.DeadlineAt),
		IsCompleted: gw.IsCompleted,
	}, "")
	if err != nil {
		return fmt.Errorf("build create gameweek query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create gameweek: %w", err)
	}
	return nil
}

func (r *GameweekRepository) Update(ctx context.Context, gw gameweek.Gameweek) error {
	query, args, err := qb.Update("gameweeks").
		Set("round_number", gw.RoundNumber).
		Set("round_name", gw.RoundName).
		Set("match_date", timeToUnix(gw.MatchDate)).
		Set("deadline_at", timeToUnix(gw.DeadlineAt)).
		Set("is_completed", gw.IsCompleted).
		SetExpr("updated_at", "EXTRACT(EPOCH FROM NOW())::BIGINT").
		Where(qb.Eq("id", gw.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update gameweek query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update gameweek: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: gameweek %s", usecase.ErrNotFound, gw.ID)
	}
	return nil
}

func (r *GameweekRepository) SetCompleted(ctx context.Context, gameweekID string, completed bool) error {
	query, args, err := qb.Update("gameweeks").
		Set("is_completed", completed).
		SetExpr("updated_at", "EXTRACT(EPOCH FROM NOW())::BIGINT").
		Where(qb.Eq("id", gameweekID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set gameweek completed query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set gameweek completed: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: gameweek %s", usecase.ErrNotFound, gameweekID)
	}
	return nil
}

func gameweekFromRow(row gameweekTableModel) gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:          row.ID,
		RoundNumber: row.RoundNumber,
		RoundName:   row.RoundName,
		MatchDate:   unixToTime(row.MatchDate),
		DeadlineAt:  unixToTime(row.DeadlineAt),
		IsCompleted: row.IsCompleted,
	}
}
