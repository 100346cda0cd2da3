package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront/internal/domain"
)

// ActivityRepository stores audit trail entries.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository builds repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	const query = `
        INSERT INTO activity_log (event_id, event_type, user_id, role, payload, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		entry.EventID,
		entry.EventType,
		entry.UserID,
		string(entry.Role),
		entry.Payload,
		entry.CreatedAt,
	).Scan(&entry.ID)
}
