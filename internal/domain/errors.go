package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a códigos: 404 NotFound, 409 stock/puntos/conflicto,
// 402 pago rechazado, 400 entrada inválida.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrMemberNotFound     = errors.New("miembro no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidDiscount    = errors.New("descuento inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInsufficientPoints = errors.New("puntos insuficientes")
	ErrInsufficientCash   = errors.New("efectivo recibido menor al total")
	ErrPaymentDeclined    = errors.New("pago rechazado por el proveedor")

	// ErrInconsistency indica divergencia entre el stock vivo y el libro de movimientos.
	// Nunca se corrige en silencio: la transacción afectada se detiene y el error sube.
	ErrInconsistency = errors.New("inconsistencia entre stock y libro de movimientos")
)
