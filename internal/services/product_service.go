package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"productapi/internal/models"
	"productapi/internal/versioning"
	"productapi/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// seedProduct is one row of the fixed catalog returned by list operations.
// createdDaysAgo positions the v2 createdAt field relative to the current
// time.
type seedProduct struct {
	id             int
	name           string
	price          float64
	category       string
	createdDaysAgo int
}

var seedCatalog = []seedProduct{
	{id: 1, name: "Laptop", price: 1200.00, category: "Computers", createdDaysAgo: 10},
	{id: 2, name: "Keyboard", price: 75.00, category: "Accessories", createdDaysAgo: 20},
	{id: 3, name: "Mouse", price: 25.00, category: "Accessories", createdDaysAgo: 30},
}

// ProductEventPublisher publishes lifecycle events for created products.
// *rabbitmq.Client satisfies it.
type ProductEventPublisher interface {
	PublishProductCreated(event rabbitmq.ProductCreatedEvent) error
}

// ProductService produces version-correct representations of the product
// resource. It holds no mutable state: list and get synthesize their results
// on every call, and created products are returned once and discarded, so
// a later GetProductByID will not see them.
type ProductService struct {
	clock    func() time.Time
	ids      IDGenerator
	validate *validator.Validate
	events   ProductEventPublisher
}

// NewProductService creates a new ProductService. events may be nil, in
// which case create operations skip event publishing.
func NewProductService(ids IDGenerator, events ProductEventPublisher) *ProductService {
	return &ProductService{
		clock:    time.Now,
		ids:      ids,
		validate: validator.New(),
		events:   events,
	}
}

// SetClock overrides the time source. Tests use it to pin createdAt values.
func (s *ProductService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// ListProducts returns the seed catalog shaped for the requested version.
// Exactly one of the returned values is non-nil: a flat slice for v1, an
// envelope for v2.
func (s *ProductService) ListProducts(version versioning.Version) ([]models.ProductV1, *models.ProductListEnvelope) {
	if version == versioning.V2 {
		now := s.clock()
		data := make([]models.ProductV2, 0, len(seedCatalog))
		for _, seed := range seedCatalog {
			data = append(data, models.ProductV2{
				ID:        seed.id,
				Name:      seed.name,
				Price:     seed.price,
				Category:  seed.category,
				InStock:   seed.id%2 == 0,
				CreatedAt: now.AddDate(0, 0, -seed.createdDaysAgo),
			})
		}
		return nil, &models.ProductListEnvelope{
			Data:    data,
			Total:   len(data),
			Version: string(versioning.V2),
		}
	}

	products := make([]models.ProductV1, 0, len(seedCatalog))
	for _, seed := range seedCatalog {
		products = append(products, models.ProductV1{
			ID:    seed.id,
			Name:  seed.name,
			Price: seed.price,
		})
	}
	return products, nil
}

// GetProductByID synthesizes a single product for the requested version.
// Exactly one of the product returns is non-nil on success. Any positive id
// resolves to a product; there is no backing store to miss against, so the
// only failure is an id that fails validation. A real system would replace
// the synthesis with a lookup and a distinct not-found error.
func (s *ProductService) GetProductByID(version versioning.Version, id int) (*models.ProductV1, *models.ProductV2, error) {
	if id <= 0 {
		return nil, nil, &ValidationError{Message: "Invalid product ID"}
	}

	if version == versioning.V2 {
		return nil, &models.ProductV2{
			ID:          id,
			Name:        fmt.Sprintf("Enhanced Product %d", id),
			Price:       99.99 * float64(id),
			Category:    "Electronics",
			InStock:     id%2 == 0,
			CreatedAt:   s.clock().AddDate(0, 0, -id),
			Description: fmt.Sprintf("This is an enhanced description for product %d", id),
			Tags:        []string{"electronics", "featured"},
		}, nil
	}

	return &models.ProductV1{
		ID:    id,
		Name:  fmt.Sprintf("Product %d", id),
		Price: 99.99 * float64(id),
	}, nil, nil
}

// CreateProduct validates the request and returns the would-be created
// product. The result is ephemeral: nothing is persisted. When an event
// publisher is configured, a product.created event is published after
// validation passes; publish failures are logged and never surfaced to the
// caller.
func (s *ProductService) CreateProduct(req models.CreateProductRequest) (*models.ProductV2, error) {
	// The required tag does not catch all-whitespace names.
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Message: "Product name is required"}
	}
	if err := s.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		for _, fieldErr := range validationErrors {
			switch fieldErr.Field() {
			case "Name":
				return nil, &ValidationError{Message: "Product name is required"}
			case "Price":
				return nil, &ValidationError{Message: "Price must be greater than 0"}
			}
		}
		return nil, &ValidationError{Message: err.Error()}
	}

	product := &models.ProductV2{
		ID:        s.ids.NextID(),
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		InStock:   true,
		CreatedAt: s.clock(),
	}

	if s.events != nil {
		event := rabbitmq.ProductCreatedEvent{
			EventID:   uuid.New().String(),
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Category:  product.Category,
			CreatedAt: product.CreatedAt,
		}
		if err := s.events.PublishProductCreated(event); err != nil {
			log.Printf("Failed to publish product.created event for product %d: %v", product.ID, err)
		}
	}

	return product, nil
}
