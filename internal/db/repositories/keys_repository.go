package repositories

import (
	"context"

	"flightbay/techlog/internal/constants"
	"flightbay/techlog/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type KeysRepo struct {
	db *sqlx.DB
}

func NewApiKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db}
}

func (r *KeysRepo) GetStatus(ctx context.Context, key string) (*entities.ApiKey, error) {

	var apiKey entities.ApiKey

	err := r.db.QueryRowxContext(ctx, constants.GetApiKeyStatus, key).StructScan(&apiKey)
	if err != nil {
		return nil, err
	}

	return &apiKey, nil
}
