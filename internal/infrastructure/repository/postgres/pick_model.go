package postgres

type pickTableModel struct {
	ID          int64  `db:"id"`
	ProfileID   string `db:"profile_id"`
	GameweekID  string `db:"gameweek_id"`
	Player1ID   string `db:"player_1_id"`
	Player2ID   string `db:"player_2_id"`
	Player3ID   string `db:"player_3_id"`
	Player4ID   string `db:"player_4_id"`
	CaptainSlot int    `db:"captain_slot"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
	DeletedAt   *int64 `db:"deleted_at"`
}

type pickInsertModel struct {
	ProfileID   string `db:"profile_id"`
	GameweekID  string `db:"gameweek_id"`
	Player1ID   string `db:"player_1_id"`
	Player2ID   string `db:"player_2_id"`
	Player3ID   string `db:"player_3_id"`
	Player4ID   string `db:"player_4_id"`
	CaptainSlot int    `db:"captain_slot"`
	UpdatedAt   int64  `db:"updated_at"`
}
