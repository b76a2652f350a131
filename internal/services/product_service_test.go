package services_test

import (
	"fmt"
	"testing"
	"time"

	"productapi/internal/models"
	"productapi/internal/services"
	"productapi/internal/versioning"
	"productapi/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher is a mock implementation of services.ProductEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductCreated(event rabbitmq.ProductCreatedEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// newTestService builds a service with a pinned clock and sequential ids
// starting at 1000.
func newTestService(events services.ProductEventPublisher) (*services.ProductService, time.Time) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	service := services.NewProductService(services.NewSequenceIDGenerator(1000), events)
	service.SetClock(func() time.Time { return now })
	return service, now
}

func TestProductService_ListProducts_V1(t *testing.T) {
	service, _ := newTestService(nil)

	products, envelope := service.ListProducts(versioning.V1)

	assert.Nil(t, envelope)
	require.Len(t, products, 3)
	for i, product := range products {
		assert.Equal(t, i+1, product.ID)
		assert.NotEmpty(t, product.Name)
		assert.Greater(t, product.Price, 0.0)
	}
}

func TestProductService_ListProducts_V2(t *testing.T) {
	service, now := newTestService(nil)

	products, envelope := service.ListProducts(versioning.V2)

	assert.Nil(t, products)
	require.NotNil(t, envelope)
	assert.Equal(t, "2.0", envelope.Version)
	assert.Equal(t, len(envelope.Data), envelope.Total)
	require.Len(t, envelope.Data, 3)

	for i, product := range envelope.Data {
		assert.Equal(t, i+1, product.ID)
		assert.NotEmpty(t, product.Category)
		assert.Equal(t, product.ID%2 == 0, product.InStock)
		assert.True(t, product.CreatedAt.Before(now))
		// List items never carry the detail-only fields.
		assert.Empty(t, product.Description)
		assert.Empty(t, product.Tags)
	}

	// Per-item createdAt offsets are fixed.
	assert.Equal(t, now.AddDate(0, 0, -10), envelope.Data[0].CreatedAt)
	assert.Equal(t, now.AddDate(0, 0, -20), envelope.Data[1].CreatedAt)
	assert.Equal(t, now.AddDate(0, 0, -30), envelope.Data[2].CreatedAt)
}

func TestProductService_ListProducts_SameSeedIdentities(t *testing.T) {
	service, _ := newTestService(nil)

	v1Products, _ := service.ListProducts(versioning.V1)
	_, envelope := service.ListProducts(versioning.V2)

	require.Len(t, v1Products, 3)
	require.NotNil(t, envelope)
	for i := range v1Products {
		assert.Equal(t, v1Products[i].ID, envelope.Data[i].ID)
		assert.Equal(t, v1Products[i].Name, envelope.Data[i].Name)
		assert.Equal(t, v1Products[i].Price, envelope.Data[i].Price)
	}
}

func TestProductService_GetProductByID_InvalidID(t *testing.T) {
	service, _ := newTestService(nil)

	for _, version := range []versioning.Version{versioning.V1, versioning.V2} {
		for _, id := range []int{0, -1, -100} {
			v1, v2, err := service.GetProductByID(version, id)
			assert.Nil(t, v1, "version %s id %d", version, id)
			assert.Nil(t, v2, "version %s id %d", version, id)

			var validationErr *services.ValidationError
			require.ErrorAs(t, err, &validationErr, "version %s id %d", version, id)
			assert.Equal(t, "Invalid product ID", validationErr.Message)
		}
	}
}

func TestProductService_GetProductByID_V1(t *testing.T) {
	service, _ := newTestService(nil)

	product, v2, err := service.GetProductByID(versioning.V1, 5)

	assert.NoError(t, err)
	assert.Nil(t, v2)
	require.NotNil(t, product)
	assert.Equal(t, 5, product.ID)
	assert.Equal(t, "Product 5", product.Name)
	assert.InDelta(t, 499.95, product.Price, 1e-9)
}

func TestProductService_GetProductByID_V2(t *testing.T) {
	service, now := newTestService(nil)

	v1, product, err := service.GetProductByID(versioning.V2, 4)

	assert.NoError(t, err)
	assert.Nil(t, v1)
	require.NotNil(t, product)
	assert.Equal(t, 4, product.ID)
	assert.Equal(t, "Enhanced Product 4", product.Name)
	assert.InDelta(t, 399.96, product.Price, 1e-9)
	assert.Equal(t, "Electronics", product.Category)
	assert.True(t, product.InStock, "even ids are in stock")
	assert.Equal(t, now.AddDate(0, 0, -4), product.CreatedAt)
	assert.NotEmpty(t, product.Description)
	assert.Equal(t, []string{"electronics", "featured"}, product.Tags)

	// Odd ids are out of stock.
	_, product, err = service.GetProductByID(versioning.V2, 3)
	assert.NoError(t, err)
	require.NotNil(t, product)
	assert.False(t, product.InStock)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	service, _ := newTestService(nil)

	cases := []struct {
		name    string
		request models.CreateProductRequest
		message string
	}{
		{
			name:    "empty name",
			request: models.CreateProductRequest{Name: "", Price: 10.0},
			message: "Product name is required",
		},
		{
			name:    "whitespace name",
			request: models.CreateProductRequest{Name: "   ", Price: 10.0},
			message: "Product name is required",
		},
		{
			name:    "zero price",
			request: models.CreateProductRequest{Name: "Gaming Mouse", Price: 0},
			message: "Price must be greater than 0",
		},
		{
			name:    "negative price",
			request: models.CreateProductRequest{Name: "Gaming Mouse", Price: -5.0},
			message: "Price must be greater than 0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product, err := service.CreateProduct(tc.request)

			assert.Nil(t, product)
			var validationErr *services.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.message, validationErr.Message)
		})
	}
}

func TestProductService_CreateProduct_Success(t *testing.T) {
	service, now := newTestService(nil)

	product, err := service.CreateProduct(models.CreateProductRequest{
		Name:     "Gaming Mouse",
		Price:    89.99,
		Category: "Gaming",
	})

	assert.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, 1000, product.ID)
	assert.NotContains(t, []int{1, 2, 3}, product.ID)
	assert.Equal(t, "Gaming Mouse", product.Name)
	assert.Equal(t, 89.99, product.Price)
	assert.Equal(t, "Gaming", product.Category)
	assert.True(t, product.InStock)
	assert.Equal(t, now, product.CreatedAt)
	assert.Empty(t, product.Description)
	assert.Empty(t, product.Tags)

	// Ids advance per create.
	second, err := service.CreateProduct(models.CreateProductRequest{Name: "Headset", Price: 59.99})
	assert.NoError(t, err)
	assert.Equal(t, 1001, second.ID)
}

func TestProductService_CreateProduct_PublishesEvent(t *testing.T) {
	mockEvents := new(MockEventPublisher)
	service, now := newTestService(mockEvents)

	mockEvents.On("PublishProductCreated", mock.MatchedBy(func(event rabbitmq.ProductCreatedEvent) bool {
		return event.ProductID == 1000 &&
			event.Name == "Gaming Mouse" &&
			event.Price == 89.99 &&
			event.Category == "Gaming" &&
			event.CreatedAt.Equal(now) &&
			event.EventID != ""
	})).Return(nil).Once()

	product, err := service.CreateProduct(models.CreateProductRequest{
		Name:     "Gaming Mouse",
		Price:    89.99,
		Category: "Gaming",
	})

	assert.NoError(t, err)
	require.NotNil(t, product)
	mockEvents.AssertExpectations(t)
}

func TestProductService_CreateProduct_PublishFailureDoesNotFailCreate(t *testing.T) {
	mockEvents := new(MockEventPublisher)
	service, _ := newTestService(mockEvents)

	mockEvents.On("PublishProductCreated", mock.Anything).Return(fmt.Errorf("broker unavailable")).Once()

	product, err := service.CreateProduct(models.CreateProductRequest{Name: "Webcam", Price: 45.0})

	assert.NoError(t, err)
	require.NotNil(t, product)
	mockEvents.AssertExpectations(t)
}

func TestProductService_CreateProduct_NoValidationSkipsPublish(t *testing.T) {
	mockEvents := new(MockEventPublisher)
	service, _ := newTestService(mockEvents)

	product, err := service.CreateProduct(models.CreateProductRequest{Name: "", Price: 10.0})

	assert.Nil(t, product)
	assert.Error(t, err)
	mockEvents.AssertNotCalled(t, "PublishProductCreated", mock.Anything)
}
