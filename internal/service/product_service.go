package service

import (
	"context"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util/errorutil"
)

// ProductService coordinates catalog workflows.
type ProductService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, dispatcher: dispatcher}
}

// ProductInput carries editable product fields.
type ProductInput struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Discount    float64
}

// List returns the catalog visible to the caller. Sellers only see their own
// products; search matches name or category case-insensitively.
func (s *ProductService) List(ctx context.Context, userID int64, role domain.Role, search string) ([]domain.Product, error) {
	filter := repository.ProductFilter{}
	if role == domain.RoleSeller {
		filter.SellerID = &userID
	}
	if search != "" {
		filter.SearchTerm = &search
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError("Error fetching products! Please try again", err)
	}
	if len(products) == 0 {
		return nil, apperrors.NewEmptyResult("No products found!")
	}
	return products, nil
}

// Get returns a single product; sellers may only read their own.
func (s *ProductService) Get(ctx context.Context, userID int64, role domain.Role, id int64) (*domain.Product, error) {
	var (
		product *domain.Product
		err     error
	)
	if role == domain.RoleSeller {
		product, err = s.products.GetForSeller(ctx, id, userID)
	} else {
		product, err = s.products.GetByID(ctx, id)
	}
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("Product not found or unauthorized")
		}
		return nil, apperrors.NewInternalError("Error fetching product! Please try again", err)
	}
	return product, nil
}

// Create adds a product owned by sellerID.
func (s *ProductService) Create(ctx context.Context, sellerID int64, input ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
		SellerID:    sellerID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewInternalError("Error adding product! Please try again", err)
	}

	s.emit(ctx, events.EventProductCreated, sellerID, product)
	return product, nil
}

// Update replaces the fields of a product owned by sellerID.
func (s *ProductService) Update(ctx context.Context, sellerID, id int64, input ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
		SellerID:    sellerID,
	}
	if err := s.products.Update(ctx, product); err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("Product not found or unauthorized")
		}
		return nil, apperrors.NewInternalError("Error updating product! Please try again", err)
	}

	s.emit(ctx, events.EventProductUpdated, sellerID, product)
	return product, nil
}

// Delete removes a product owned by sellerID.
func (s *ProductService) Delete(ctx context.Context, sellerID, id int64) error {
	if err := s.products.Delete(ctx, id, sellerID); err != nil {
		if apperrors.IsNoRows(err) {
			return apperrors.NewNotFound("Product not found or unauthorized")
		}
		return apperrors.NewInternalError("Error deleting product", err)
	}

	s.emit(ctx, events.EventProductDeleted, sellerID, &domain.Product{ID: id})
	return nil
}

func (s *ProductService) emit(ctx context.Context, eventType events.EventType, sellerID int64, product *domain.Product) {
	_ = events.Emit(ctx, s.dispatcher, events.Event{
		Type:  eventType,
		Actor: events.Actor{UserID: sellerID, Role: domain.RoleSeller},
		Payload: events.ProductPayload{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
		},
	})
}
