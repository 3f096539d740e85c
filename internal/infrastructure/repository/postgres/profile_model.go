package postgres

type profileTableModel struct {
	ID        string `db:"id"`
	Username  string `db:"username"`
	TeamName  string `db:"team_name"`
	AvatarURL string `db:"avatar_url"`
	IsAdmin   bool   `db:"is_admin"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}
