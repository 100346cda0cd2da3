package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront/internal/domain"
)

// CartRepository manages buyer cart lines.
type CartRepository interface {
	// Add inserts a line or increases the quantity of an existing one.
	Add(ctx context.Context, line *domain.CartLine) error
	Remove(ctx context.Context, userID, productID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
	CountItems(ctx context.Context, userID int64) (int, error)
}

type cartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository creates repository.
func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &cartRepository{pool: pool}
}

func (r *cartRepository) Add(ctx context.Context, line *domain.CartLine) error {
	const query = `
        INSERT INTO cart (user_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, product_id)
        DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity
        RETURNING id, quantity`
	return r.pool.QueryRow(ctx, query, line.UserID, line.ProductID, line.Quantity).Scan(&line.ID, &line.Quantity)
}

func (r *cartRepository) Remove(ctx context.Context, userID, productID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart WHERE product_id=$1 AND user_id=$2`, productID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	const query = `
        SELECT c.id, c.user_id, c.quantity,
               p.id, p.name, p.category, COALESCE(p.description, ''), p.price::float8,
               COALESCE(p.discount, 0)::float8, COALESCE(p.seller_id, 0)
        FROM cart c JOIN products p ON c.product_id = p.id
        WHERE c.user_id=$1
        ORDER BY c.id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.Quantity,
			&line.Product.ID,
			&line.Product.Name,
			&line.Product.Category,
			&line.Product.Description,
			&line.Product.Price,
			&line.Product.Discount,
			&line.Product.SellerID,
		); err != nil {
			return nil, err
		}
		line.ProductID = line.Product.ID
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *cartRepository) CountItems(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM cart WHERE user_id=$1`, userID).Scan(&count)
	return count, err
}
