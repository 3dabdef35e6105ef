package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Availability stock availability label, set by the operator
type Availability string

const (
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityLowStock   Availability = "low_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityInStock, AvailabilityLowStock, AvailabilityOutOfStock:
		return true
	}
	return false
}

// ProductFilter inventory list filter tag
type ProductFilter string

const (
	FilterAll      ProductFilter = "all"
	FilterLowStock ProductFilter = "low_stock"
	FilterLocation ProductFilter = "location"
	FilterScan     ProductFilter = "scan"
)

func (f ProductFilter) Valid() bool {
	switch f {
	case FilterAll, FilterLowStock, FilterLocation, FilterScan:
		return true
	}
	return false
}

// Product jewelry inventory item
type Product struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU                string          `gorm:"size:50;not null;uniqueIndex" json:"sku"`                  // Stock keeping unit
	Name               string          `gorm:"size:100;not null;index" json:"name"`                      // Display name
	Description        *string         `gorm:"size:500" json:"description,omitempty"`                    // Free text
	ImagePath          *string         `gorm:"size:255" json:"image_path,omitempty"`                     // Relative image path
	BuyingPrice        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"buying_price"`          // Cost price
	SuggestedPrice     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"suggested_price"`       // Retail price
	Stock              int             `gorm:"not null;index" json:"stock"`                              // Units on hand
	AvailabilityStatus Availability    `gorm:"size:20;not null" json:"availability_status"`             // in_stock, low_stock, out_of_stock
	MeasurementUnit    string          `gorm:"size:20" json:"measurement_unit"`                          // unit, pair, gram
	Location           *string         `gorm:"size:100" json:"location,omitempty"`                       // Showcase or drawer
	SupplierID         *int64          `gorm:"index" json:"supplier_id,omitempty"`                       // Optional supplier
	Supplier           *Supplier       `json:"supplier,omitempty"`
	Categories         []Category      `gorm:"many2many:product_category_association" json:"categories"`
	CreationDate       time.Time       `gorm:"autoCreateTime" json:"creation_date"`
	ModificationDate   *time.Time      `json:"modification_date,omitempty"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

func (p Product) Identity() int64 { return p.ID }

func (p *Product) Touch(now time.Time) { p.ModificationDate = &now }

// CategoryIDs returns the ids of the loaded categories.
func (p Product) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// ProductPatch partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	SKU                *string          `mapstructure:"sku"`
	Name               *string          `mapstructure:"name"`
	Description        *string          `mapstructure:"description"`
	ImagePath          *string          `mapstructure:"image_path"`
	BuyingPrice        *decimal.Decimal `mapstructure:"buying_price"`
	SuggestedPrice     *decimal.Decimal `mapstructure:"suggested_price"`
	Stock              *int             `mapstructure:"stock"`
	AvailabilityStatus *Availability    `mapstructure:"availability_status"`
	MeasurementUnit    *string          `mapstructure:"measurement_unit"`
	Location           *string          `mapstructure:"location"`
	SupplierID         *int64           `mapstructure:"supplier_id"`
	ClearSupplier      bool             `mapstructure:"clear_supplier"`
	CategoryIDs        *[]int64         `mapstructure:"category_ids"`

	// Categories holds the records resolved from CategoryIDs.
	Categories []Category `mapstructure:"-"`
}

func (p ProductPatch) Apply(dst *Product) {
	if p.SKU != nil {
		dst.SKU = *p.SKU
	}
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = p.Description
	}
	if p.ImagePath != nil {
		dst.ImagePath = p.ImagePath
	}
	if p.BuyingPrice != nil {
		dst.BuyingPrice = *p.BuyingPrice
	}
	if p.SuggestedPrice != nil {
		dst.SuggestedPrice = *p.SuggestedPrice
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.AvailabilityStatus != nil {
		dst.AvailabilityStatus = *p.AvailabilityStatus
	}
	if p.MeasurementUnit != nil {
		dst.MeasurementUnit = *p.MeasurementUnit
	}
	if p.Location != nil {
		dst.Location = p.Location
	}
	switch {
	case p.ClearSupplier:
		dst.SupplierID = nil
		dst.Supplier = nil
	case p.SupplierID != nil:
		dst.SupplierID = p.SupplierID
		dst.Supplier = nil
	}
}

func (p ProductPatch) Associations() map[string]any {
	if p.CategoryIDs == nil {
		return nil
	}
	categories := p.Categories
	if categories == nil {
		categories = []Category{}
	}
	return map[string]any{"Categories": categories}
}

// Category product grouping such as rings or necklaces
type Category struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Products []Product `gorm:"many2many:product_category_association" json:"-"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}

func (c Category) Identity() int64 { return c.ID }

type CategoryPatch struct {
	Name *string `mapstructure:"name"`
}

func (p CategoryPatch) Apply(dst *Category) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
}
