package entity

// Supplier representa un proveedor de mercancía.
type Supplier struct {
	ID      string
	Name    string
	Contact string
	Phone   string
}
