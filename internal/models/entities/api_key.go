package entities

type ApiKey struct {
	ID       string `db:"id"`
	Key      string `db:"key"`
	IsActive bool   `db:"is_active"`
}
