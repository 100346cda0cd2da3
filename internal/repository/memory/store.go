// Package memory keeps the catalog in process memory. It backs the API when
// no Postgres DSN is configured and mirrors the Postgres repositories'
// error contract: missing rows are pgx.ErrNoRows and duplicate emails are
// unique violations.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/repository"
)

type cartKey struct {
	userID    int64
	productID int64
}

// Store holds users, products and carts behind a single lock.
type Store struct {
	mu sync.RWMutex

	users    map[string]domain.User
	products map[int64]domain.Product
	cart     map[cartKey]domain.CartLine
	activity []domain.ActivityEntry

	userSeq    int64
	productSeq int64
	cartSeq    int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		products: make(map[int64]domain.Product),
		cart:     make(map[cartKey]domain.CartLine),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return userRepository{s} }

// Products returns the product repository view of the store.
func (s *Store) Products() repository.ProductRepository { return productRepository{s} }

// Carts returns the cart repository view of the store.
func (s *Store) Carts() repository.CartRepository { return cartRepository{s} }

// Activity returns the audit trail repository view of the store.
func (s *Store) Activity() repository.ActivityRepository { return activityRepository{s} }

// ActivityEntries returns a copy of the recorded audit trail in insertion order.
func (s *Store) ActivityEntries() []domain.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ActivityEntry(nil), s.activity...)
}

type activityRepository struct{ s *Store }

func (r activityRepository) Create(_ context.Context, entry *domain.ActivityEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.activity {
		if existing.EventID == entry.EventID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "activity_log_event_id_key"}
		}
	}
	entry.ID = int64(len(r.s.activity) + 1)
	r.s.activity = append(r.s.activity, *entry)
	return nil
}

type userRepository struct{ s *Store }

func (r userRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.Email]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}
	r.s.userSeq++
	user.ID = r.s.userSeq
	r.s.users[user.Email] = *user
	return nil
}

func (r userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r userRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.users[email]
	return ok, nil
}

type productRepository struct{ s *Store }

func (r productRepository) Create(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.productSeq++
	product.ID = r.s.productSeq
	r.s.products[product.ID] = *product
	return nil
}

func (r productRepository) Update(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[product.ID]
	if !ok || existing.SellerID != product.SellerID {
		return pgx.ErrNoRows
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r productRepository) Delete(_ context.Context, id, sellerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[id]
	if !ok || existing.SellerID != sellerID {
		return pgx.ErrNoRows
	}
	delete(r.s.products, id)
	for key := range r.s.cart {
		if key.productID == id {
			delete(r.s.cart, key)
		}
	}
	return nil
}

func (r productRepository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	product, ok := r.s.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &product, nil
}

func (r productRepository) GetForSeller(ctx context.Context, id, sellerID int64) (*domain.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, pgx.ErrNoRows
	}
	return product, nil
}

func (r productRepository) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	term := ""
	if filter.SearchTerm != nil {
		term = strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
	}

	var result []domain.Product
	for _, p := range r.s.products {
		if filter.SellerID != nil && p.SellerID != *filter.SellerID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type cartRepository struct{ s *Store }

func (r cartRepository) Add(_ context.Context, line *domain.CartLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := cartKey{userID: line.UserID, productID: line.ProductID}
	if existing, ok := r.s.cart[key]; ok {
		existing.Quantity += line.Quantity
		r.s.cart[key] = existing
		line.ID = existing.ID
		line.Quantity = existing.Quantity
		return nil
	}
	r.s.cartSeq++
	line.ID = r.s.cartSeq
	r.s.cart[key] = domain.CartLine{ID: line.ID, UserID: line.UserID, ProductID: line.ProductID, Quantity: line.Quantity}
	return nil
}

func (r cartRepository) Remove(_ context.Context, userID, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := cartKey{userID: userID, productID: productID}
	if _, ok := r.s.cart[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.cart, key)
	return nil
}

func (r cartRepository) ListByUser(_ context.Context, userID int64) ([]domain.CartLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var lines []domain.CartLine
	for key, line := range r.s.cart {
		if key.userID != userID {
			continue
		}
		product, ok := r.s.products[key.productID]
		if !ok {
			continue
		}
		line.Product = product
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (r cartRepository) CountItems(_ context.Context, userID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := 0
	for key, line := range r.s.cart {
		if key.userID == userID {
			total += line.Quantity
		}
	}
	return total, nil
}
