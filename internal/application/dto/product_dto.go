package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Barcode     string          `json:"barcode"`
	QRCode      string          `json:"qr_code"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Tags        []string        `json:"tags"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil = sin cambio.
// El stock NO se edita por aquí: solo el motor de ventas y los documentos de
// entrada/ajuste lo mutan, siempre con entrada de libro.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
	QRCode      *string          `json:"qr_code,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Supplier    *string          `json:"supplier,omitempty"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
}

// SearchProductsRequest query params para GET /api/products.
type SearchProductsRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Barcode  string `query:"barcode"`
	MinPrice string `query:"min_price"`
	MaxPrice string `query:"max_price"`
	InStock  bool   `query:"in_stock"`
	PageRequest
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Barcode     string          `json:"barcode"`
	QRCode      string          `json:"qr_code"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url,omitempty"`
	Tags        []string        `json:"tags"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductToResponse convierte la entidad al DTO de respuesta.
func ProductToResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Barcode:     p.Barcode,
		QRCode:      p.QRCode,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Supplier:    p.Supplier,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Tags:        p.Tags,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
