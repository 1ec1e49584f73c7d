package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son recuperables:
// la capa HTTP los traduce a respuestas 4xx y el proceso sigue vivo.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrWouldGoNegative   = errors.New("cancelar esta entrada dejaría el total en negativo")
)
