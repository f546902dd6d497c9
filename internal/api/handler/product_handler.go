package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/catalog-api/internal/api/metrics"
	"github.com/storefront/catalog-api/internal/api/middleware"
	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

type ProductHandler struct {
	svc ports.ProductService
	log zerolog.Logger
}

func NewProductHandler(svc ports.ProductService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

// Create adds a product to the catalog.
//
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  productCreatedResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	in, ok := middleware.Validated[domain.ProductInput](c)
	if !ok {
		return middleware.ErrInvalidPayload
	}

	product, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	h.mutated(c, "create", product.ID)
	return c.JSON(http.StatusCreated, productCreatedResponse{
		Message: "product created successfully",
		Product: product,
	})
}

// List returns the catalog, optionally filtered by category and paginated.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Exact category"
// @Param        page      query     int     false  "Page (from 1)"
// @Param        limit     query     int     false  "Page size (1-100)"
// @Success      200       {array}   domain.Product
// @Failure      400       {object}  errorBody
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	var q listProductsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	products, err := h.svc.List(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns a single product.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorBody
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Replace overwrites a product with a full body.
//
// @Summary      Replace product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /products/{id} [put]
func (h *ProductHandler) Replace(c echo.Context) error {
	in, ok := middleware.Validated[domain.ProductInput](c)
	if !ok {
		return middleware.ErrInvalidPayload
	}

	id := c.Param("id")
	if err := h.svc.Replace(c.Request().Context(), id, in); err != nil {
		return err
	}

	h.mutated(c, "replace", id)
	return c.JSON(http.StatusOK, messageResponse{Message: "product updated successfully"})
}

// Update changes only the supplied fields.
//
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Any subset of product fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	patch, ok := middleware.Validated[domain.ProductPatch](c)
	if !ok {
		return middleware.ErrInvalidPayload
	}

	id := c.Param("id")
	if err := h.svc.Update(c.Request().Context(), id, patch); err != nil {
		return err
	}

	h.mutated(c, "update", id)
	return c.JSON(http.StatusOK, messageResponse{Message: "product updated successfully"})
}

// Delete removes a product.
//
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorBody
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.mutated(c, "delete", id)
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted successfully"})
}

func (h *ProductHandler) mutated(c echo.Context, op, id string) {
	metrics.ProductMutationsTotal.WithLabelValues(op).Inc()
	h.log.Info().
		Str("operation", op).
		Str("product_id", id).
		Str("actor_id", actorID(c)).
		Msg("product mutated")
}
