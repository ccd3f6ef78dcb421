package transfer

import (
	"context"

	"github.com/petrosur/fuelops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios del libro atados a esa tx. Garantiza atomicidad para el motor de
// transferencias: cualquier fallo tras escrituras parciales revierte todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.FuelLotRepository,
		transferRepo repository.InternalTransferRepository,
		saleRepo repository.SaleTransferRepository,
		testingRepo repository.TestingTransferRepository,
	) error) error
}
