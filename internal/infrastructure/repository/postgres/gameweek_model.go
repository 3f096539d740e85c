package postgres

type gameweekTableModel struct {
	ID          string `db:"id"`
	RoundNumber int    `db:"round_number"`
	RoundName   string `db:"round_name"`
	MatchDate   int64  `db:"match_date"`
	DeadlineAt  int64  `db:"deadline_at"`
	IsCompleted bool   `db:"is_completed"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
	DeletedAt   *int64 `db:"deleted_at"`
}

type gameweekInsertModel struct {
	ID          string `db:"id"`
	RoundNumber int    `db:"round_number"`
	RoundName   string `db:"round_name"`
	MatchDate   int64  `db:"match_date"`
	DeadlineAt  int64  `db:"deadline_at"`
	IsCompleted bool   `db:"is_completed"`
}
