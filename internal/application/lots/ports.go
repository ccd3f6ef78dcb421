package lots

import (
	"context"

	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repositorio
// de lotes atado a esa tx. Garantiza que la asignación de secuencias y la
// inserción del lote sean atómicas.
type TxRunner interface {
	RunLots(ctx context.Context, fn func(lotRepo repository.FuelLotRepository) error) error
}
