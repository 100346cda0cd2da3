package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront/internal/domain"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	SellerID   *int64
	SearchTerm *string
}

// ProductRepository encapsulates product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id, sellerID int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetForSeller(ctx context.Context, id, sellerID int64) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, category, COALESCE(description, ''), price::float8, COALESCE(discount, 0)::float8, COALESCE(seller_id, 0)`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, category, description, price, discount, seller_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Category,
		product.Description,
		product.Price,
		product.Discount,
		product.SellerID,
	).Scan(&product.ID)
}

// Update modifies a product owned by product.SellerID. Foreign products
// report pgx.ErrNoRows.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, category=$2, description=$3, price=$4, discount=$5
        WHERE id=$6 AND seller_id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Category,
		product.Description,
		product.Price,
		product.Discount,
		product.ID,
		product.SellerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id, sellerID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1 AND seller_id=$2`, id, sellerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) GetForSeller(ctx context.Context, id, sellerID int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1 AND seller_id=$2`
	return scanProduct(r.pool.QueryRow(ctx, query, id, sellerID))
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.SellerID != nil {
		args = append(args, *filter.SellerID)
		clauses = append(clauses, fmt.Sprintf("seller_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.SearchTerm)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(name ILIKE %s OR category ILIKE %s)", placeholder, placeholder))
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY id`, productColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}
	return result, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Description,
		&product.Price,
		&product.Discount,
		&product.SellerID,
	); err != nil {
		return nil, err
	}
	return &product, nil
}
