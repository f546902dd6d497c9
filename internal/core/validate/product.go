package validate

import (
	"strings"

	"github.com/storefront/catalog-api/internal/core/domain"
)

const (
	MsgName        = "name required, min 2 chars"
	MsgPrice       = "price must be a positive number"
	MsgCategory    = "category required"
	MsgQuantity    = "stock must be a non-negative number"
	MsgPatchEmpty  = "at least one field required"
	minProductName = 2
	fieldName      = "name"
	fieldPrice     = "price"
	fieldCategory  = "category"
	fieldQuantity  = "quantity"
)

// PriceRule selects how a full product body treats price == 0.
type PriceRule int

const (
	// PricePresence accepts any number >= 0, including 0.
	PricePresence PriceRule = iota
	// PriceTruthy treats 0 as a missing price and rejects it.
	PriceTruthy
)

func (r PriceRule) String() string {
	if r == PriceTruthy {
		return "truthy"
	}
	return "presence"
}

// ProductOptions tunes the create/replace validator.
type ProductOptions struct {
	PriceRule PriceRule
}

// Product validates a full product body used for create and replace.
// Name is trimmed; category is kept as sent; quantity stays nil when absent.
func Product(f Fields, opts ProductOptions) (domain.ProductInput, error) {
	name, ok := asString(f[fieldName])
	if !ok || trimmedLen(name) < minProductName {
		return domain.ProductInput{}, reject(fieldName, MsgName)
	}

	rawPrice := f[fieldPrice]
	if opts.PriceRule == PriceTruthy && !truthy(rawPrice) {
		return domain.ProductInput{}, reject(fieldPrice, MsgPrice)
	}
	price, ok := asNumber(rawPrice)
	if !ok || price < 0 {
		return domain.ProductInput{}, reject(fieldPrice, MsgPrice)
	}

	category, ok := asString(f[fieldCategory])
	if !ok || category == "" {
		return domain.ProductInput{}, reject(fieldCategory, MsgCategory)
	}

	var quantity *float64
	if f.has(fieldQuantity) {
		q, ok := asNumber(f[fieldQuantity])
		if !ok || q < 0 {
			return domain.ProductInput{}, reject(fieldQuantity, MsgQuantity)
		}
		quantity = &q
	}

	return domain.ProductInput{
		Name:     strings.TrimSpace(name),
		Price:    price,
		Category: category,
		Quantity: quantity,
	}, nil
}

// ProductPatch validates a partial update. Only present fields are checked
// and only present fields end up in the patch.
func ProductPatch(f Fields) (domain.ProductPatch, error) {
	if !f.has(fieldName) && !f.has(fieldPrice) && !f.has(fieldCategory) && !f.has(fieldQuantity) {
		return domain.ProductPatch{}, reject("", MsgPatchEmpty)
	}

	var patch domain.ProductPatch

	if f.has(fieldName) {
		name, ok := asString(f[fieldName])
		if !ok || trimmedLen(name) < minProductName {
			return domain.ProductPatch{}, reject(fieldName, MsgName)
		}
		name = strings.TrimSpace(name)
		patch.Name = &name
	}

	if f.has(fieldPrice) {
		price, ok := asNumber(f[fieldPrice])
		if !ok || price < 0 {
			return domain.ProductPatch{}, reject(fieldPrice, MsgPrice)
		}
		patch.Price = &price
	}

	if f.has(fieldCategory) {
		category, ok := asString(f[fieldCategory])
		if !ok || strings.TrimSpace(category) == "" {
			return domain.ProductPatch{}, reject(fieldCategory, MsgCategory)
		}
		category = strings.TrimSpace(category)
		patch.Category = &category
	}

	if f.has(fieldQuantity) {
		q, ok := asNumber(f[fieldQuantity])
		if !ok || q < 0 {
			return domain.ProductPatch{}, reject(fieldQuantity, MsgQuantity)
		}
		patch.Quantity = &q
	}

	return patch, nil
}
