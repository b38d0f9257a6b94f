package dto

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría del catálogo.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryToResponse convierte la entidad al DTO de respuesta.
func CategoryToResponse(c *entity.Category) *CategoryResponse {
	return &CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
}

// SupplierResponse proveedor de mercancía.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// SupplierToResponse convierte la entidad al DTO de respuesta.
func SupplierToResponse(s *entity.Supplier) *SupplierResponse {
	return &SupplierResponse{ID: s.ID, Name: s.Name, Contact: s.Contact, Phone: s.Phone}
}
