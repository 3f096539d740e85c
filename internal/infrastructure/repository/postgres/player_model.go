package postgres

type playerTableModel struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Position  string `db:"position"`
	Price     int64  `db:"price"`
	ImageURL  string `db:"image_url"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}

type playerInsertModel struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Price    int64  `db:"price"`
	ImageURL string `db:"image_url"`
}
