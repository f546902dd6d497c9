package handler

import "github.com/storefront/catalog-api/internal/core/domain"

// Request bodies are decoded and validated by middleware.Validate; these
// types only describe them for the API docs.

type registerRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"secret1"`
	Role     string `json:"role,omitempty" enums:"admin,common"`
}

type loginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"secret1"`
}

type productRequest struct {
	Name     string   `json:"name" example:"Desk lamp"`
	Price    float64  `json:"price" example:"19.9"`
	Category string   `json:"category" example:"home"`
	Quantity *float64 `json:"quantity,omitempty" example:"3"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type productCreatedResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

// listProductsQuery binds GET /products query parameters.
type listProductsQuery struct {
	Category string `query:"category" validate:"omitempty,max=100"`
	Page     int    `query:"page" validate:"omitempty,min=1,max=1000000"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (q listProductsQuery) toFilter() domain.ProductFilter {
	page := q.Page
	if page == 0 {
		page = 1
	}
	return domain.ProductFilter{Category: q.Category, Page: page, Limit: q.Limit}
}
