package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProduct wraps every product validation failure
var ErrInvalidProduct = errors.New("invalid product")

// Validate checks the product invariants enforced on admin writes
func (p *Product) Validate() error {
	var problems []string

	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if p.Price.IsNegative() {
		problems = append(problems, "price must not be negative")
	}
	if p.OriginalPrice.Valid && p.OriginalPrice.Decimal.LessThan(p.Price) {
		problems = append(problems, "original_price must be greater than or equal to price")
	}
	if p.StockQuantity < 0 {
		problems = append(problems, "stock_quantity must not be negative")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		problems = append(problems, "rating must be between 0 and 5")
	}
	if p.ReviewCount != nil && *p.ReviewCount < 0 {
		problems = append(problems, "review_count must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProduct, strings.Join(problems, "; "))
	}
	return nil
}
