package service

import (
	"context"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util/errorutil"
)

// CartService coordinates buyer cart workflows.
type CartService struct {
	carts      repository.CartRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// CartDependencies bundles repositories for the cart service.
type CartDependencies struct {
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Dispatcher  events.Dispatcher
}

// NewCartService builds the service.
func NewCartService(deps CartDependencies) *CartService {
	return &CartService{
		carts:      deps.CartRepo,
		products:   deps.ProductRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Add puts quantity units of productID into the buyer's cart, adding to any
// quantity already there.
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) (*domain.CartLine, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("Product not found")
		}
		return nil, apperrors.NewInternalError("Error adding to cart", err)
	}

	line := &domain.CartLine{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.carts.Add(ctx, line); err != nil {
		return nil, apperrors.NewInternalError("Error adding to cart", err)
	}

	_ = events.Emit(ctx, s.dispatcher, events.Event{
		Type:    events.EventCartItemAdded,
		Actor:   events.Actor{UserID: userID, Role: domain.RoleBuyer},
		Payload: events.CartPayload{ProductID: productID, Quantity: quantity},
	})
	return line, nil
}

// Remove drops productID from the buyer's cart.
func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	if err := s.carts.Remove(ctx, userID, productID); err != nil {
		if apperrors.IsNoRows(err) {
			return apperrors.NewNotFound("Cart item not found or unauthorized")
		}
		return apperrors.NewInternalError("Error removing from cart", err)
	}

	_ = events.Emit(ctx, s.dispatcher, events.Event{
		Type:    events.EventCartItemRemoved,
		Actor:   events.Actor{UserID: userID, Role: domain.RoleBuyer},
		Payload: events.CartPayload{ProductID: productID},
	})
	return nil
}

// List returns the buyer's cart lines joined with their products.
func (s *CartService) List(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Error fetching cart", err)
	}
	if len(lines) == 0 {
		return nil, apperrors.NewEmptyResult("Cart is empty")
	}
	return lines, nil
}

// Count returns the total quantity across the buyer's cart lines.
func (s *CartService) Count(ctx context.Context, userID int64) (int, error) {
	count, err := s.carts.CountItems(ctx, userID)
	if err != nil {
		return 0, apperrors.NewInternalError("Error fetching cart count", err)
	}
	return count, nil
}
