package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectWithConditionsAndOrder(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "name", "price").
		From("players").
		Where(IsNull("deleted_at"), Eq("position", "FWD")).
		OrderBy("name ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	wantSQL := "SELECT id, name, price FROM players WHERE deleted_at IS NULL AND position = $1 ORDER BY name ASC LIMIT 10"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"FWD"}) {
		t.Fatalf("args = %v, want [FWD]", args)
	}
}

func TestSelectInCondition(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("players").
		Where(In("id", []any{"p1", "p2"})).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	wantSQL := "SELECT id FROM players WHERE id IN ($1, $2)"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"p1", "p2"}) {
		t.Fatalf("args = %v, want [p1 p2]", args)
	}
}

func TestSelectEmptyInNeverMatches(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").From("players").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	if sql != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want none", args)
	}
}

func TestSelectGroupBySum(t *testing.T) {
	t.Parallel()

	sql, _, err := Select("profile_id", "SUM(total_points) AS total_points").
		From("fantasy_scores").
		Where(IsNull("deleted_at")).
		GroupBy("profile_id").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	wantSQL := "SELECT profile_id, SUM(total_points) AS total_points FROM fantasy_scores WHERE deleted_at IS NULL GROUP BY profile_id"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
}

func TestExprBindsQuestionMarks(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("gameweeks").
		Where(Expr("deadline_at > ?", int64(1700000000)), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	wantSQL := "SELECT id FROM gameweeks WHERE deadline_at > $1 AND deleted_at IS NULL"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{int64(1700000000)}) {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertMultiRowWithSuffix(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("player_match_stats").
		Columns("gameweek_id", "player_id", "goals").
		Values("gw1", "p1", 2).
		Values("gw1", "p2", 0).
		Suffix("ON CONFLICT (gameweek_id, player_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	wantSQL := "INSERT INTO player_match_stats (gameweek_id, player_id, goals) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (gameweek_id, player_id) DO NOTHING"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 6 {
		t.Fatalf("len(args) = %d, want 6", len(args))
	}
}

func TestInsertRowWidthMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("players").
		Columns("id", "name").
		Values("p1").
		ToSQL()
	if err == nil {
		t.Fatal("ToSQL() = nil error, want row width error")
	}
}

func TestUpdateSetAndSetExpr(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("gameweeks").
		Set("is_completed", true).
		SetExpr("updated_at", "?", int64(1700000000)).
		Where(Eq("id", "gw1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	wantSQL := "UPDATE gameweeks SET is_completed = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{true, int64(1700000000), "gw1"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestDeleteRequiresCondition(t *testing.T) {
	t.Parallel()

	if _, _, err := DeleteFrom("player_match_stats").ToSQL(); err == nil {
		t.Fatal("ToSQL() without conditions = nil error, want error")
	}

	sql, args, err := DeleteFrom("player_match_stats").
		Where(Eq("gameweek_id", "gw1")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}
	if sql != "DELETE FROM player_match_stats WHERE gameweek_id = $1" {
		t.Fatalf("sql = %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"gw1"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertModelUsesDBTags(t *testing.T) {
	t.Parallel()

	type row struct {
		ID      string `db:"id"`
		Name    string `db:"name"`
		Skipped string `db:"-"`
		private string
	}
	_ = row{private: ""}.private

	sql, args, err := InsertModel("players", row{ID: "p1", Name: "Ada"}, "")
	if err != nil {
		t.Fatalf("InsertModel() error = %v", err)
	}

	wantSQL := "INSERT INTO players (id, name) VALUES ($1, $2)"
	if sql != wantSQL {
		t.Fatalf("sql = %q, want %q", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"p1", "Ada"}) {
		t.Fatalf("args = %v", args)
	}
}
