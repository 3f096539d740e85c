package postgres

type matchStatTableModel struct {
	ID          int64  `db:"id"`
	GameweekID  string `db:"gameweek_id"`
	PlayerID    string `db:"player_id"`
	Played      bool   `db:"played"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
	YellowCards int    `db:"yellow_cards"`
	RedCards    int    `db:"red_cards"`
	CreatedAt   int64  `db:"created_at"`
	UpdatedAt   int64  `db:"updated_at"`
}
