package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

// Product represents a catalog product
type Product struct {
	ID            string              `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string              `json:"name" gorm:"not null"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price" gorm:"type:numeric(10,2);not null"`
	OriginalPrice decimal.NullDecimal `json:"original_price" gorm:"type:numeric(10,2)"`
	ImageURL      string              `json:"image_url"`
	Category      string              `json:"category" gorm:"index"`
	StockQuantity int                 `json:"stock_quantity" gorm:"not null;default:0"`
	IsFeatured    bool                `json:"is_featured" gorm:"default:false"`
	Rating        *float64            `json:"rating,omitempty" gorm:"type:numeric(2,1)"`
	ReviewCount   *int                `json:"review_count,omitempty"`
	Colors        pq.StringArray      `json:"colors" gorm:"type:text[]"`
	Sizes         pq.StringArray      `json:"sizes" gorm:"type:text[]"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns a uuid when the caller did not
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// InStock reports whether any unit is available
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// OnSale reports whether an original price exists and exceeds the price
func (p *Product) OnSale() bool {
	return p.OriginalPrice.Valid && p.OriginalPrice.Decimal.GreaterThan(p.Price)
}

// RatingValue returns the rating, treating missing as 0
func (p *Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// ReviewCountValue returns the review count, treating missing as 0
func (p *Product) ReviewCountValue() int {
	if p.ReviewCount == nil {
		return 0
	}
	return *p.ReviewCount
}

// HasColor reports whether the product is offered in the color
func (p *Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

// HasSize reports whether the product is offered in the size
func (p *Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Category groups products. Products reference categories by name.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// Suggest does a case-insensitive substring match on name or category
	Suggest(ctx context.Context, query string, limit int) ([]Product, error)
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindAll(ctx context.Context) ([]Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
}
