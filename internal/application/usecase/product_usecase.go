package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD y búsqueda del catálogo. El Stock no se edita
// por aquí: solo el motor de ventas y los movimientos de inventario lo mutan.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. El stock inicial de alta no escribe entrada de libro:
// es el punto de partida desde el que el libro concilia.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Barcode != "" {
		existing, err := uc.repo.GetByBarcode(in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Barcode:     in.Barcode,
		QRCode:      in.QRCode,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Supplier:    in.Supplier,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return dto.ProductToResponse(product), nil
}

// GetByID obtiene un producto por id.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ProductToResponse(product), nil
}

// GetByBarcode obtiene un producto por código de barras o QR exacto.
func (uc *ProductUseCase) GetByBarcode(code string) (*dto.ProductResponse, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByBarcode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ProductToResponse(product), nil
}

// Update actualiza los campos de catálogo de un producto. Campos nil no cambian;
// Stock no es editable por esta vía.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Barcode != nil && *in.Barcode != product.Barcode {
		if *in.Barcode != "" {
			existing, err := uc.repo.GetByBarcode(*in.Barcode)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		product.Barcode = *in.Barcode
	}
	if in.QRCode != nil {
		product.QRCode = *in.QRCode
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Tags != nil {
		product.Tags = in.Tags
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return dto.ProductToResponse(product), nil
}

// Delete elimina un producto del catálogo. Sus entradas de libro quedan:
// el libro es append-only y sobrevive al producto.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Search lista el catálogo con filtros de texto, categoría y precio.
func (uc *ProductUseCase) Search(in dto.SearchProductsRequest) ([]*dto.ProductResponse, int, error) {
	limit, offset := in.LimitOffset()
	q := repository.ProductQuery{
		Search:   strings.TrimSpace(in.Search),
		Category: in.Category,
		Barcode:  in.Barcode,
		InStock:  in.InStock,
		Limit:    limit,
		Offset:   offset,
	}
	if in.MinPrice != "" {
		min, err := decimal.NewFromString(in.MinPrice)
		if err != nil {
			return nil, 0, domain.ErrInvalidInput
		}
		q.MinPrice = &min
	}
	if in.MaxPrice != "" {
		max, err := decimal.NewFromString(in.MaxPrice)
		if err != nil {
			return nil, 0, domain.ErrInvalidInput
		}
		q.MaxPrice = &max
	}
	products, total, err := uc.repo.List(q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductToResponse(p))
	}
	return out, total, nil
}
