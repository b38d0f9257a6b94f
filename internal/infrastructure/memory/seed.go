package memory

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// SeedDemo carga el catálogo, usuarios y membresías de demostración.
// Pensado para el arranque sin DATABASE_URL: deja la tienda lista para probar
// el flujo completo (owner/admin/cashier, clave password123).
func (s *Store) SeedDemo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	for _, u := range []entity.User{
		{ID: "1", Username: "owner", Email: "owner@store.com", Role: entity.RoleOwner, Name: "John Owner"},
		{ID: "2", Username: "admin", Email: "admin@store.com", Role: entity.RoleAdmin, Name: "Jane Admin"},
		{ID: "3", Username: "cashier", Email: "cashier@store.com", Role: entity.RoleCashier, Name: "Mike Cashier"},
	} {
		u.PasswordHash = string(hash)
		u.CreatedAt = base
		cp := u
		s.users[u.ID] = &cp
		s.userByUsername[u.Username] = u.ID
	}

	products := []entity.Product{
		{
			ID: "1", Name: `MacBook Pro 16"`, Barcode: "1234567890123", QRCode: "PROD-001",
			Price: decimal.NewFromInt(89900), Stock: 5, Category: "electronics", Supplier: "Apple Store",
			Description: "Latest MacBook Pro with M3 chip",
			Tags:        []string{"laptop", "apple", "computer", "professional"},
			Rating:      4.8, Reviews: 156,
		},
		{
			ID: "2", Name: "iPhone 15 Pro", Barcode: "2345678901234", QRCode: "PROD-002",
			Price: decimal.NewFromInt(39900), Stock: 12, Category: "electronics", Supplier: "Apple Store",
			Description: "Latest iPhone with titanium design",
			Tags:        []string{"phone", "apple", "smartphone", "mobile"},
			Rating:      4.9, Reviews: 324,
		},
		{
			ID: "3", Name: "Wireless Headphones", Barcode: "3456789012345", QRCode: "PROD-003",
			Price: decimal.NewFromInt(2990), Stock: 0, Category: "electronics", Supplier: "Sony Electronics",
			Description: "Noise-cancelling wireless headphones",
			Tags:        []string{"headphones", "audio", "wireless", "noise-cancelling"},
			Rating:      4.6, Reviews: 89,
		},
		{
			ID: "4", Name: "Gaming Mouse", Barcode: "4567890123456", QRCode: "PROD-004",
			Price: decimal.NewFromInt(1590), Stock: 8, Category: "electronics", Supplier: "Logitech",
			Description: "High-precision gaming mouse",
			Tags:        []string{"mouse", "gaming", "computer", "accessories"},
			Rating:      4.4, Reviews: 67,
		},
		{
			ID: "5", Name: "Coffee Beans", Barcode: "5678901234567", QRCode: "PROD-005",
			Price: decimal.NewFromInt(450), Stock: 25, Category: "food", Supplier: "Local Coffee Roaster",
			Description: "Premium arabica coffee beans",
			Tags:        []string{"coffee", "beans", "arabica", "premium"},
			Rating:      4.7, Reviews: 234,
		},
	}
	for _, p := range products {
		p.CreatedAt = base
		p.UpdatedAt = base
		cp := p
		s.products[p.ID] = &cp
	}

	for _, c := range []entity.Category{
		{ID: "1", Name: "Electronics", Description: "Electronic devices and accessories"},
		{ID: "2", Name: "Food", Description: "Food and beverages"},
		{ID: "3", Name: "Clothing", Description: "Apparel and accessories"},
		{ID: "4", Name: "Books", Description: "Books and educational materials"},
	} {
		cp := c
		s.categories[c.ID] = &cp
	}

	for _, sp := range []entity.Supplier{
		{ID: "1", Name: "Apple Store", Contact: "contact@apple.com", Phone: "02-123-4567"},
		{ID: "2", Name: "Sony Electronics", Contact: "info@sony.com", Phone: "02-234-5678"},
		{ID: "3", Name: "Logitech", Contact: "support@logitech.com", Phone: "02-345-6789"},
		{ID: "4", Name: "Local Coffee Roaster", Contact: "info@coffee.com", Phone: "02-456-7890"},
	} {
		cp := sp
		s.suppliers[sp.ID] = &cp
	}

	for _, m := range []entity.Member{
		{
			ID: "1", Phone: "0812345678", Name: "Alice Johnson", Points: 150,
			TotalSpent: decimal.NewFromInt(45000),
			CreatedAt:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			LastVisit:  time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "2", Phone: "0823456789", Name: "Bob Smith", Points: 89,
			TotalSpent: decimal.NewFromInt(25600),
			CreatedAt:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			LastVisit:  time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC),
		},
	} {
		cp := m
		s.members[m.ID] = &cp
		s.memberByPhone[m.Phone] = m.ID
	}

	return nil
}
