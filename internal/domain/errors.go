package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente en la unidad de origen")
	ErrCapacityExceeded   = errors.New("la capacidad de la unidad de destino sería excedida")
	ErrOpeningMissing     = errors.New("lectura de apertura no registrada para la fecha")
	ErrConcurrentConflict = errors.New("conflicto de concurrencia sobre los lotes; reintentar")
	ErrUnitInactive       = errors.New("la unidad de almacenamiento está inactiva")
)
