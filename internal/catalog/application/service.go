package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alerquim/commerce-platform/internal/catalog/domain"
	"github.com/alerquim/commerce-platform/internal/events"
	"github.com/alerquim/commerce-platform/pkg/metrics"
)

// Fixed reason strings carried on the validation response wire. Kept verbatim
// from the upstream marketplace contract; order-side callers surface them
// as-is.
const (
	MsgStockAvailable    = "Estoque disponível para todos os produtos"
	MsgStockInsufficient = "Estoque insuficiente para um ou mais produtos"
)

type ProductView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Service owns the catalog side of the stock saga (validation and decrement)
// plus the ordinary product CRUD exposed over HTTP.
type Service struct {
	log       *slog.Logger
	repo      ProductRepository
	publisher EventPublisher
}

func NewService(log *slog.Logger, repo ProductRepository, publisher EventPublisher) *Service {
	return &Service{log: log, repo: repo, publisher: publisher}
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (ProductView, error) {
	price, err := domain.MoneyFromFloat(req.Price)
	if err != nil {
		return ProductView{}, err
	}
	product, err := domain.NewProduct(req.Name, req.Description, price)
	if err != nil {
		return ProductView{}, err
	}
	if err := s.repo.Add(ctx, product); err != nil {
		return ProductView{}, err
	}
	return viewOf(product), nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (ProductView, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return ProductView{}, err
	}
	return viewOf(product), nil
}

func (s *Service) ListProducts(ctx context.Context) ([]ProductView, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOf(p))
	}
	return views, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req CreateProductRequest) (ProductView, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return ProductView{}, err
	}
	price, err := domain.MoneyFromFloat(req.Price)
	if err != nil {
		return ProductView{}, err
	}
	if err := product.Update(req.Name, req.Description, price); err != nil {
		return ProductView{}, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return ProductView{}, err
	}
	return viewOf(product), nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AddStock records a manual stock addition backed by an invoice.
func (s *Service) AddStock(ctx context.Context, id uuid.UUID, quantity int, invoice string) error {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := product.AddStock(quantity, invoice); err != nil {
		return err
	}
	return s.repo.Update(ctx, product)
}

// ValidateStock reports whether every line item exists and has sufficient
// quantity on hand. Read-only; short-circuits on the first failure.
func (s *Service) ValidateStock(ctx context.Context, items []events.OrderItem) bool {
	for _, item := range items {
		product, err := s.repo.Get(ctx, item.ProductID)
		if err != nil {
			s.log.Info("validation failed, product unknown", "product_id", item.ProductID)
			return false
		}
		if !product.HasStock(item.Quantity) {
			s.log.Info("validation failed, insufficient stock",
				"product_id", item.ProductID, "on_hand", product.StockQuantity(), "requested", item.Quantity)
			return false
		}
	}
	return true
}

// DecreaseStock subtracts each item's quantity after a fresh read-only
// sufficiency pass. The decrement itself is atomic per item but not across
// the batch: if stock for a later item is consumed between the pass and its
// decrement, earlier items stay decremented. Reference ties the movements to
// the order that consumed them.
func (s *Service) DecreaseStock(ctx context.Context, items []events.OrderItem, reference string) bool {
	if !s.ValidateStock(ctx, items) {
		return false
	}
	for _, item := range items {
		if err := s.repo.DecrementStock(ctx, item.ProductID, item.Quantity, reference); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrProductNotFound) {
				s.log.Warn("decrement lost the race", "product_id", item.ProductID, "err", err)
				return false
			}
			s.log.Error("decrement failed", "product_id", item.ProductID, "err", err)
			return false
		}
	}
	return true
}

// RespondToValidation answers one stock validation request, echoing its
// correlation id.
func (s *Service) RespondToValidation(ctx context.Context, requestID uuid.UUID, items []events.OrderItem) error {
	isValid := s.ValidateStock(ctx, items)
	message := MsgStockInsufficient
	outcome := "rejected"
	if isValid {
		message = MsgStockAvailable
		outcome = "confirmed"
	}
	metrics.StockValidations.WithLabelValues(outcome).Inc()

	response := events.StockValidationResponse{RequestID: requestID, IsValid: isValid, Message: message}
	if err := s.publisher.Publish(ctx, events.TopicStockValidationResponse, requestID, response); err != nil {
		return fmt.Errorf("publish validation response: %w", err)
	}
	s.log.Info("validation answered", "request_id", requestID, "is_valid", isValid)
	return nil
}

// ApplyOrderCreated decrements stock for a created order, or publishes the
// cancellation trigger when the stock drifted away since validation.
func (s *Service) ApplyOrderCreated(ctx context.Context, orderID uuid.UUID, items []events.OrderItem) error {
	if s.DecreaseStock(ctx, items, orderID.String()) {
		metrics.StockDecrements.WithLabelValues("applied").Inc()
		s.log.Info("stock decremented for order", "order_id", orderID)
		return nil
	}
	metrics.StockDecrements.WithLabelValues("cancelled").Inc()
	s.log.Warn("insufficient stock at decrement time, cancelling order", "order_id", orderID)
	cancel := events.OrderCancelled{OrderID: orderID}
	if err := s.publisher.Publish(ctx, events.TopicOrderCancelled, orderID, cancel); err != nil {
		return fmt.Errorf("publish order cancelled: %w", err)
	}
	return nil
}

func viewOf(p *domain.Product) ProductView {
	return ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.Float64(),
		StockQuantity: p.StockQuantity(),
	}
}
