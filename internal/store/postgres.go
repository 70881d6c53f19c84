package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (repository *Postgres) Upsert(ctx context.Context, subscription Subscription) (bool, error) {
	existsQuery := `SELECT EXISTS(SELECT 1 FROM push_subscriptions WHERE endpoint = $1)`
	var exists bool
	if err := repository.db.QueryRow(ctx, existsQuery, subscription.Endpoint).Scan(&exists); err != nil {
		return false, err
	}

	upsertQuery := `
		INSERT INTO push_subscriptions (endpoint, p256dh, auth, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (endpoint)
		DO UPDATE SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth, updated_at = NOW()
	`

	_, err := repository.db.Exec(ctx, upsertQuery, subscription.Endpoint, subscription.P256DH, subscription.Auth)
	if err != nil {
		return false, err
	}

	return !exists, nil
}

func (repository *Postgres) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	_, err := repository.db.Exec(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	return err
}

func (repository *Postgres) List(ctx context.Context) ([]Subscription, error) {
	rows, err := repository.db.Query(ctx, `SELECT endpoint, p256dh, auth FROM push_subscriptions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Subscription, 0)
	for rows.Next() {
		item := Subscription{}
		if err := rows.Scan(&item.Endpoint, &item.P256DH, &item.Auth); err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
