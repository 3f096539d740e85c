package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/fantasy-companion/internal/domain/profile"
	qb "github.com/matchdayhq/fantasy-companion/internal/platform/querybuilder"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

type ProfileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*ProfileRepository)(nil)

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	query, args, err := qb.Select("*").
		From("profiles").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID string) (profile.Profile, error) {
	query, args, err := qb.Select("*").
		From("profiles").
		Where(qb.Eq("id", profileID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return profile.Profile{}, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, fmt.Errorf("%w: profile %s", usecase.ErrNotFound, profileID)
		}
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return profileFromRow(row), nil
}

func (r *ProfileRepository) GetByIDs(ctx context.Context, profileIDs []string) ([]profile.Profile, error) {
	if len(profileIDs) == 0 {
		return []profile.Profile{}, nil
	}

	values := make([]any, 0, len(profileIDs))
	for _, profileID := range profileIDs {
		values = append(values, profileID)
	}

	query, args, err := qb.Select("*").
		From("profiles").
		Where(qb.In("id", values), qb.IsNull("deleted_at")).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get profiles by ids query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get profiles by ids: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func profileFromRow(row profileTableModel) profile.Profile {
	return profile.Profile{
		ID:        row.ID,
		Username:  row.Username,
		TeamName:  row.TeamName,
		AvatarURL: row.AvatarURL,
		IsAdmin:   row.IsAdmin,
	}
}
