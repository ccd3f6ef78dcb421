package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStorageUnitRequest body para POST /api/units.
type CreateStorageUnitRequest struct {
	Type           string          `json:"type"` // TRUCK | DATUM | DISPENSER
	Code           string          `json:"code"`
	CapacityLiters decimal.Decimal `json:"capacity_liters"`
}

// UpdateStorageUnitRequest body para PUT /api/units/{id} (campos opcionales).
type UpdateStorageUnitRequest struct {
	Code           *string          `json:"code,omitempty"`
	CapacityLiters *decimal.Decimal `json:"capacity_liters,omitempty"`
	Active         *bool            `json:"active,omitempty"`
}

// StorageUnitResponse representación HTTP de una unidad.
type StorageUnitResponse struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Code           string          `json:"code"`
	CapacityLiters decimal.Decimal `json:"capacity_liters"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StorageUnitListResponse listado paginado de unidades.
type StorageUnitListResponse struct {
	Items []StorageUnitResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// CreateDriverRequest body para POST /api/drivers.
type CreateDriverRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// DriverResponse representación HTTP de un conductor.
type DriverResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// DriverListResponse listado paginado de conductores.
type DriverListResponse struct {
	Items []DriverResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
