package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"productapi/internal/models"
	"productapi/internal/services"
	"productapi/internal/versioning"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the versioned products resource.
type ProductHandler struct {
	service        *services.ProductService
	defaultVersion versioning.Version
}

// NewProductHandler creates a new ProductHandler. defaultVersion applies to
// routes that carry no version segment.
func NewProductHandler(service *services.ProductService, defaultVersion versioning.Version) *ProductHandler {
	return &ProductHandler{
		service:        service,
		defaultVersion: defaultVersion,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The
// version is read exclusively from the URL path segment; the unversioned
// routes resolve to the configured default.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	versioned := router.Group("/v:version")
	versioned.Get("/products", h.HandleListProducts)
	versioned.Get("/products/:id", h.HandleGetProductByID)
	versioned.Post("/products", h.HandleCreateProduct)

	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:id", h.HandleGetProductByID)
	router.Post("/products", h.HandleCreateProduct)
}

// resolveVersion reads the version tag from the path, falling back to the
// handler default when the route has no version segment.
func (h *ProductHandler) resolveVersion(c *fiber.Ctx) (versioning.Version, error) {
	return versioning.Parse(c.Params("version"), h.defaultVersion)
}

// HandleListProducts serves the product catalog: a flat array under v1, an
// enveloped list under v2.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	version, err := h.resolveVersion(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	products, envelope := h.service.ListProducts(version)
	if envelope != nil {
		return c.JSON(envelope)
	}
	return c.JSON(products)
}

// HandleGetProductByID serves a single product in the requested version's
// shape. Non-numeric ids are rejected the same way as non-positive ones.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	version, err := h.resolveVersion(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid product ID")
	}

	productV1, productV2, err := h.service.GetProductByID(version, id)
	if err != nil {
		return h.sendError(c, err)
	}
	if productV2 != nil {
		return c.JSON(productV2)
	}
	return c.JSON(productV1)
}

// HandleCreateProduct creates a product under v2. The operation does not
// exist under v1, so v1 requests get a 404.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	version, err := h.resolveVersion(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if version != versioning.V2 {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Invalid request body")
	}

	product, err := h.service.CreateProduct(req)
	if err != nil {
		return h.sendError(c, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/v2.0/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// sendError maps service errors onto the wire: validation failures become a
// 400 with the message as a plain-text body, anything else a 500.
func (h *ProductHandler) sendError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).SendString(validationErr.Message)
	}
	log.Printf("Unexpected error handling product request: %v", err)
	return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
}
