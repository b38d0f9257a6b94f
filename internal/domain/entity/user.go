package entity

import "time"

// Roles de los usuarios del sistema.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User representa un empleado con acceso al sistema (cajero, admin o dueño).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt
	Role         string
	Name         string
	CreatedAt    time.Time
}
