package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrosur/fuelops-api/internal/application/transfer"
	"github.com/petrosur/fuelops-api/internal/domain"
	"github.com/petrosur/fuelops-api/internal/domain/entity"
	"github.com/petrosur/fuelops-api/internal/domain/fuel"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de transferencias contra repositorios en memoria.
//
// El contrato central: el remanente de cada lote se deriva siempre de las filas
// del libro, el reparto es FIFO estricto por UnitSeq, y una operación que falla
// la validación no escribe ninguna fila.
// ──────────────────────────────────────────────────────────────────────────────

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func litros(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newEngine(s *memStore) *transfer.Engine {
	return transfer.NewEngine(s, &memUnitRepo{s}, &memDriverRepo{s}, &memDayRepo{s})
}

func addUnit(s *memStore, id, unitType, code string, capacity int64) *entity.StorageUnit {
	u := &entity.StorageUnit{
		ID:             id,
		Type:           unitType,
		Code:           code,
		CapacityLiters: litros(capacity),
		Active:         true,
	}
	s.units[id] = u
	return u
}

func addLot(s *memStore, id, unitID string, seq int64, loaded int64, code string) *entity.FuelLot {
	lot := &entity.FuelLot{
		ID:                      id,
		UnitID:                  unitID,
		UnitSeq:                 seq,
		LoadedLiters:            litros(loaded),
		UsedLiters:              decimal.Zero,
		CumulativeTestingLiters: decimal.Zero,
		StockStatus:             entity.StockStatusInStock,
		LoadType:                entity.LoadTypePurchase,
		LotCodeCreated:          code,
		LoadTime:                testDay,
	}
	s.lots = append(s.lots, lot)
	s.unitSeqs[unitID] = seq
	return lot
}

func addOpening(s *memStore, unitID string) {
	s.days = append(s.days, &entity.DayReading{
		ID:            "day-" + unitID,
		UnitID:        unitID,
		Date:          testDay,
		OpeningLiters: litros(1000),
	})
}

// TestRegister_TrasvaseFIFOMultiLote verifica el reparto FIFO: una transferencia
// que excede el remanente del lote más antiguo lo agota y continúa con el
// siguiente, produciendo exactamente una fila del libro por lote consumido.
func TestRegister_TrasvaseFIFOMultiLote(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 10000)
	l1 := addLot(s, "l1", "t1", 1, 500, "T1250310A")
	l2 := addLot(s, "l2", "t1", 2, 1000, "T1250310B")
	addLot(s, "d1", "t2", 1, 100, "T2250310A")
	addOpening(s, "t1")
	eng := newEngine(s)

	result, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(800),
		ActorID:     "op1",
		PerformedAt: testDay.Add(10 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, result.Slices, 2, "800 L contra lotes de 500 y 1000 debe producir exactamente dos tramos")

	// Primer tramo: agota el lote más antiguo.
	assert.Equal(t, "l1", result.Slices[0].FromLot.ID)
	assert.True(t, result.Slices[0].Volume.Equal(litros(500)))
	assert.Equal(t, "T1250310A-500", result.Slices[0].FromLotCodeAfter)

	// Segundo tramo: el resto sale del siguiente en orden FIFO.
	assert.Equal(t, "l2", result.Slices[1].FromLot.ID)
	assert.True(t, result.Slices[1].Volume.Equal(litros(300)))
	assert.Equal(t, "T1250310B-300", result.Slices[1].FromLotCodeAfter)

	// Snapshots del destino: entrada acumulada tras cada tramo.
	assert.Equal(t, "T2250310A-0+(500)", result.Slices[0].ToLotCodeAfter)
	assert.Equal(t, "T2250310A-0+(800)", result.Slices[1].ToLotCodeAfter)

	// Contador de salida estrictamente creciente por unidad de origen.
	assert.Less(t, result.Slices[0].OutflowSeq, result.Slices[1].OutflowSeq)

	// Caches refrescados en la misma operación.
	assert.Equal(t, entity.StockStatusSold, l1.StockStatus)
	assert.True(t, l1.UsedLiters.Equal(litros(500)))
	assert.Equal(t, entity.StockStatusInStock, l2.StockStatus)
	assert.True(t, l2.UsedLiters.Equal(litros(300)))

	assert.False(t, result.SeededNewLot)
	assert.Len(t, s.transfers, 2)
}

// TestRegister_SiembraDestinoVacio verifica la creación implícita de lote en un
// destino vacío: el lote sembrado nace cargado con el volumen total y los tramos
// fundacionales quedan marcados para no contar la carga dos veces.
func TestRegister_SiembraDestinoVacio(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 10000)
	addLot(s, "l1", "t1", 1, 500, "T1250310A")
	addLot(s, "l2", "t1", 2, 1000, "T1250310B")
	addOpening(s, "t1")
	eng := newEngine(s)

	result, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(800),
		ActorID:     "op1",
		PerformedAt: testDay.Add(10 * time.Hour),
	})
	require.NoError(t, err)
	require.True(t, result.SeededNewLot)
	require.NotNil(t, result.ToLot)

	seeded := result.ToLot
	assert.Equal(t, entity.LoadTypeEmptyTransfer, seeded.LoadType)
	assert.True(t, seeded.LoadedLiters.Equal(litros(800)),
		"el lote sembrado nace cargado con el volumen total transferido")
	assert.Equal(t, "T2250310A", seeded.LotCodeCreated)

	// Todos los tramos de la operación fundacional llevan la marca.
	require.Len(t, s.transfers, 2)
	for _, row := range s.transfers {
		assert.True(t, row.TransferToEmpty)
		assert.Equal(t, seeded.ID, row.ToLotID)
	}

	// El libro del lote sembrado no suma entrada: su carga ya está en loaded.
	ledger := fuel.LotLedger{Lot: seeded, Inbound: s.transfers}
	assert.True(t, ledger.InboundAdded().IsZero())
	assert.True(t, ledger.Remaining().Equal(litros(800)))
}

// TestRegister_SiembraRespetaCapacidad: sembrar exige que el volumen total quepa
// en la unidad destino.
func TestRegister_SiembraRespetaCapacidad(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 500)
	addLot(s, "l1", "t1", 1, 5000, "T1250310A")
	addOpening(s, "t1")
	eng := newEngine(s)

	_, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(800),
		PerformedAt: testDay.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Empty(t, s.transfers, "una operación rechazada no escribe ninguna fila")
	assert.Len(t, s.lots, 1, "no debe quedar lote sembrado")
}

// TestRegister_StockInsuficiente: si el remanente vivo total del origen no cubre
// el volumen, la operación falla completa sin consumo parcial.
func TestRegister_StockInsuficiente(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 10000)
	addLot(s, "l1", "t1", 1, 1000, "T1250310A")
	addLot(s, "d1", "t2", 1, 100, "T2250310A")
	addOpening(s, "t1")
	eng := newEngine(s)
	ctx := context.Background()

	// Una venta de 600 L deja 400 L vivos en el lote.
	_, err := eng.Register(ctx, transfer.TransferInput{
		Activity:    entity.ActivityTankerToVehicle,
		FromUnitID:  "t1",
		ToVehicle:   "ABC-123",
		Volume:      litros(600),
		PerformedAt: testDay.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	// 500 L ya no caben: el remanente se deriva del libro, no del loaded original.
	_, err = eng.Register(ctx, transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(500),
		PerformedAt: testDay.Add(10 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.transfers)
}

// TestRegister_CapacidadExcedidaDestino: el remanente vivo del destino más el
// volumen entrante no puede superar la capacidad de la unidad.
func TestRegister_CapacidadExcedidaDestino(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "dat", entity.UnitTypeDatum, "D1", 20000)
	addLot(s, "l1", "t1", 1, 5000, "T1250310A")
	addLot(s, "dl", "dat", 1, 19500, "D1250310A")
	addOpening(s, "t1")
	eng := newEngine(s)

	_, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityTankerToDatum,
		FromUnitID:  "t1",
		ToUnitID:    "dat",
		Volume:      litros(800),
		PerformedAt: testDay.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Empty(t, s.transfers)
}

// TestRegister_CapacidadDestinoMultiLote: la capacidad se valida contra el
// remanente vivo de TODOS los lotes INSTOCK del destino, no solo el vigente.
func TestRegister_CapacidadDestinoMultiLote(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 1000)
	addLot(s, "l1", "t1", 1, 5000, "T1250310A")
	addLot(s, "d1", "t2", 1, 600, "T2250310A")
	addLot(s, "d2", "t2", 2, 300, "T2250310B") // vigente, pero d1 sigue lleno
	addOpening(s, "t1")
	eng := newEngine(s)
	ctx := context.Background()

	// 600 + 300 + 200 = 1100 > 1000: el lote vigente solo tiene 300, pero la
	// unidad ya carga 900.
	_, err := eng.Register(ctx, transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(200),
		PerformedAt: testDay.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Empty(t, s.transfers, "una operación rechazada no escribe ninguna fila")

	// Hasta el tope exacto sí cabe: 600 + 300 + 100 = 1000.
	result, err := eng.Register(ctx, transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(100),
		PerformedAt: testDay.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "d2", result.ToLot.ID, "el volumen entra al lote vigente")
	assert.Len(t, s.transfers, 1)
}

// TestRegister_AperturaFaltante: sin lectura de apertura del día en la unidad de
// origen no se registran transferencias internas.
func TestRegister_AperturaFaltante(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 10000)
	addLot(s, "l1", "t1", 1, 1000, "T1250310A")
	eng := newEngine(s)

	_, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(100),
		PerformedAt: testDay.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrOpeningMissing)
}

// TestRegister_RutaInvalida: la actividad declarada debe corresponder a los
// tipos de unidad reales.
func TestRegister_RutaInvalida(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 10000)
	addLot(s, "l1", "t1", 1, 1000, "T1250310A")
	addOpening(s, "t1")
	eng := newEngine(s)

	_, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityTankerToDatum, // destino real: TRUCK
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(100),
		PerformedAt: testDay.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── ventas ────────────────────────────────────────────────────────────────────

func TestRegister_VentaLoteUnico(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	lot := addLot(s, "l1", "t1", 1, 1000, "T1250310A")
	eng := newEngine(s)

	result, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityTankerToVehicle,
		FromUnitID:  "t1",
		ToVehicle:   "ABC-123",
		Volume:      litros(600),
		PerformedAt: testDay.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.SaleID)
	assert.Equal(t, "T1250310A-600", result.LotCodeAfter)
	assert.True(t, lot.UsedLiters.Equal(litros(600)))
	assert.Equal(t, entity.StockStatusInStock, lot.StockStatus)
	require.Len(t, s.sales, 1)
	assert.Equal(t, "ABC-123", s.sales[0].ToVehicle)
}

// La venta es de lote único: no reparte entre lotes aunque el volumen exceda
// el remanente del lote vigente.
func TestRegister_VentaExcedeLoteVigente(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addLot(s, "l1", "t1", 1, 500, "T1250310A")
	addLot(s, "l2", "t1", 2, 100, "T1250310B") // vigente: mayor UnitSeq
	eng := newEngine(s)

	_, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityTankerToVehicle,
		FromUnitID:  "t1",
		ToVehicle:   "ABC-123",
		Volume:      litros(300),
		PerformedAt: testDay.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.sales)
}

func TestRegister_VentaDesdeUnidadVacia(t *testing.T) {
	s := newMemStore()
	addUnit(s, "disp", entity.UnitTypeDispenser, "S1", 5000)
	eng := newEngine(s)

	_, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityDatumToVehicle,
		FromUnitID:  "disp",
		ToVehicle:   "ABC-123",
		Volume:      litros(50),
		PerformedAt: testDay.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ── extracciones de prueba ────────────────────────────────────────────────────

// La prueba de calibración es neto cero sobre el stock vendible: no altera
// used_liters ni el snapshot, solo el contador paralelo y su tabla de auditoría.
func TestRegister_PruebaNetoCero(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	lot := addLot(s, "l1", "t1", 1, 1000, "T1250310A")
	eng := newEngine(s)

	result, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:    entity.ActivityTesting,
		FromUnitID:  "t1",
		Volume:      litros(50),
		PerformedAt: testDay.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.TestingID)
	assert.Equal(t, "T1250310A-0", result.LotCodeAfter)
	assert.True(t, lot.UsedLiters.IsZero())
	assert.True(t, lot.CumulativeTestingLiters.Equal(litros(50)))
	assert.Equal(t, entity.StockStatusInStock, lot.StockStatus)
	require.Len(t, s.testings, 1)
}

// ── validaciones de entrada ───────────────────────────────────────────────────

func TestRegister_VolumenNoPositivo(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	eng := newEngine(s)

	_, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:   entity.ActivityTankerToVehicle,
		FromUnitID: "t1",
		ToVehicle:  "ABC-123",
		Volume:     decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_UnidadOrigenInexistente(t *testing.T) {
	s := newMemStore()
	eng := newEngine(s)

	_, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:   entity.ActivityTankerToVehicle,
		FromUnitID: "nope",
		ToVehicle:  "ABC-123",
		Volume:     litros(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_UnidadInactiva(t *testing.T) {
	s := newMemStore()
	u := addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	u.Active = false
	eng := newEngine(s)

	_, err := eng.Register(context.Background(), transfer.TransferInput{
		Activity:   entity.ActivityTankerToVehicle,
		FromUnitID: "t1",
		ToVehicle:  "ABC-123",
		Volume:     litros(10),
	})
	assert.ErrorIs(t, err, domain.ErrUnitInactive)
}

// ── corrección administrativa ─────────────────────────────────────────────────

func TestFullUpdate_CorrigeVolumenYCaches(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 10000)
	src := addLot(s, "l1", "t1", 1, 1000, "T1250310A")
	dst := addLot(s, "d1", "t2", 1, 100, "T2250310A")
	addOpening(s, "t1")
	eng := newEngine(s)
	ctx := context.Background()

	result, err := eng.Register(ctx, transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(300),
		PerformedAt: testDay.Add(10 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, result.Slices, 1)
	transferID := result.Slices[0].TransferID

	updated, err := eng.FullUpdate(ctx, transfer.FullUpdateInput{
		TransferID: transferID,
		Volume:     litros(500),
		ActorID:    "admin",
	})
	require.NoError(t, err)
	require.Len(t, updated.Slices, 1)

	assert.True(t, s.transfers[0].TransferVolume.Equal(litros(500)))
	assert.Equal(t, "T1250310A-500", s.transfers[0].FromLotCodeAfter)
	assert.Equal(t, "T2250310A-0+(500)", s.transfers[0].ToLotCodeAfter)
	assert.True(t, src.UsedLiters.Equal(litros(500)))
	assert.Equal(t, entity.StockStatusInStock, src.StockStatus)
	assert.True(t, dst.UsedLiters.IsZero())
}

func TestFullUpdate_RechazaVolumenSinRespaldo(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 10000)
	addLot(s, "l1", "t1", 1, 1000, "T1250310A")
	addLot(s, "d1", "t2", 1, 100, "T2250310A")
	addOpening(s, "t1")
	eng := newEngine(s)
	ctx := context.Background()

	result, err := eng.Register(ctx, transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(300),
		PerformedAt: testDay.Add(10 * time.Hour),
	})
	require.NoError(t, err)

	_, err = eng.FullUpdate(ctx, transfer.FullUpdateInput{
		TransferID: result.Slices[0].TransferID,
		Volume:     litros(1100), // el origen cargó 1000
		ActorID:    "admin",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.transfers[0].TransferVolume.Equal(litros(300)), "la fila no debe cambiar")
}

// La corrección aplica la misma regla de capacidad que el registro: el delta se
// valida contra el remanente vivo de toda la unidad destino, no solo del lote
// que recibió el tramo.
func TestFullUpdate_CapacidadUnidadMultiLote(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 1000)
	addLot(s, "l1", "t1", 1, 5000, "T1250310A")
	addLot(s, "d1", "t2", 1, 600, "T2250310A")
	addLot(s, "d2", "t2", 2, 300, "T2250310B")
	addOpening(s, "t1")
	eng := newEngine(s)
	ctx := context.Background()

	result, err := eng.Register(ctx, transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2",
		Volume:      litros(50), // 600 + 300 + 50 = 950, cabe
		PerformedAt: testDay.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, result.Slices, 1)

	// Subir el tramo a 200 dejaría la unidad en 1100 L aunque el lote receptor
	// por sí solo quedara muy por debajo de la capacidad.
	_, err = eng.FullUpdate(ctx, transfer.FullUpdateInput{
		TransferID: result.Slices[0].TransferID,
		Volume:     litros(200),
		ActorID:    "admin",
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.True(t, s.transfers[0].TransferVolume.Equal(litros(50)), "la fila no debe cambiar")

	// Hasta el tope exacto sí: 600 + 300 + 100 = 1000.
	updated, err := eng.FullUpdate(ctx, transfer.FullUpdateInput{
		TransferID: result.Slices[0].TransferID,
		Volume:     litros(100),
		ActorID:    "admin",
	})
	require.NoError(t, err)
	assert.True(t, updated.Volume.Equal(litros(100)))
}

func TestFullUpdate_RechazaTramoFundacional(t *testing.T) {
	s := newMemStore()
	addUnit(s, "t1", entity.UnitTypeTruck, "T1", 10000)
	addUnit(s, "t2", entity.UnitTypeTruck, "T2", 10000)
	addLot(s, "l1", "t1", 1, 1000, "T1250310A")
	addOpening(s, "t1")
	eng := newEngine(s)
	ctx := context.Background()

	result, err := eng.Register(ctx, transfer.TransferInput{
		Activity:    entity.ActivityTankerToTanker,
		FromUnitID:  "t1",
		ToUnitID:    "t2", // vacía: siembra
		Volume:      litros(300),
		PerformedAt: testDay.Add(10 * time.Hour),
	})
	require.NoError(t, err)
	require.True(t, result.SeededNewLot)

	_, err = eng.FullUpdate(ctx, transfer.FullUpdateInput{
		TransferID: result.Slices[0].TransferID,
		Volume:     litros(200),
		ActorID:    "admin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFullUpdate_TransferenciaInexistente(t *testing.T) {
	s := newMemStore()
	eng := newEngine(s)

	_, err := eng.FullUpdate(context.Background(), transfer.FullUpdateInput{
		TransferID: "nope",
		Volume:     litros(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
