package postgres

type scoreTableModel struct {
	ID           int64  `db:"id"`
	ProfileID    string `db:"profile_id"`
	GameweekID   string `db:"gameweek_id"`
	Slot1Points  int    `db:"slot_1_points"`
	Slot2Points  int    `db:"slot_2_points"`
	Slot3Points  int    `db:"slot_3_points"`
	Slot4Points  int    `db:"slot_4_points"`
	CaptainBonus int    `db:"captain_bonus"`
	TotalPoints  int    `db:"total_points"`
	CalculatedAt int64  `db:"calculated_at"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
}

type profileTotalRow struct {
	ProfileID   string `db:"profile_id"`
	TotalPoints int    `db:"total_points"`
}
