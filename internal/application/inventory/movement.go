package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	domaininv "github.com/jhoicas/epharma-api/internal/domain/inventory"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

// MovementUseCase aplica entradas de stock, ventas y reversiones de entradas de forma
// transaccional: el registro del movimiento y la nueva existencia del item se confirman
// juntos o no se confirma ninguno.
type MovementUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, log *logger.Logger) *MovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementUseCase{txRunner: txRunner, log: log, now: time.Now}
}

// StockInInput entrada para registrar mercancía recibida.
type StockInInput struct {
	ItemID     int64
	Quantity   int
	InvoiceNo  string
	BatchNo    string
	ExpiryDate string // YYYY-MM-DD
}

// SaleInput entrada para registrar una venta. Si UnitCost o UnitPrice son nil
// se toman los precios actuales del item.
type SaleInput struct {
	ItemID    int64
	Quantity  int
	UnitCost  *decimal.Decimal
	UnitPrice *decimal.Decimal
}

func (in StockInInput) validate() error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !domaininv.ValidateExpiryDate(strings.TrimSpace(in.ExpiryDate)) {
		return domain.ErrInvalidInput
	}
	return nil
}

func (in SaleInput) validate() error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyStockIn registra la entrada y suma la cantidad a la existencia del item.
// Devuelve el id del movimiento. domain.ErrNotFound si el item no existe.
func (uc *MovementUseCase) ApplyStockIn(ctx context.Context, in StockInInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	var id int64
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		stockInRepo repository.StockInRepository,
		_ repository.SalesItemRepository,
	) error {
		var err error
		id, err = uc.stockInTx(ctx, itemRepo, stockInRepo, in)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("item_id", in.ItemID).Int("quantity", in.Quantity).Msg("entrada de stock abortada")
		return 0, err
	}
	return id, nil
}

// ApplySale verifica que la cantidad pedida no supere la existencia, registra la venta
// y descuenta la cantidad. Si no alcanza devuelve *domain.InsufficientStockError sin
// aplicar ningún cambio.
func (uc *MovementUseCase) ApplySale(ctx context.Context, in SaleInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	var id int64
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.StockInRepository,
		salesRepo repository.SalesItemRepository,
	) error {
		var err error
		id, err = uc.saleTx(ctx, itemRepo, salesRepo, in)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("item_id", in.ItemID).Int("quantity", in.Quantity).Msg("venta abortada")
		return 0, err
	}
	return id, nil
}

// ReverseStockIn elimina una entrada y resta su cantidad de la existencia del item.
// No se revalida contra ventas posteriores: la existencia puede quedar negativa.
func (uc *MovementUseCase) ReverseStockIn(ctx context.Context, stockInID int64) error {
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		stockInRepo repository.StockInRepository,
		_ repository.SalesItemRepository,
	) error {
		stockIn, err := stockInRepo.GetByID(ctx, stockInID)
		if err != nil {
			return err
		}
		item, err := itemRepo.GetByID(ctx, stockIn.ItemID)
		if err != nil {
			return err
		}
		if err := stockInRepo.Delete(ctx, stockIn.ID); err != nil {
			return err
		}
		newQty := item.Quantity - stockIn.Quantity
		if err := itemRepo.UpdateQuantity(ctx, item.ID, newQty); err != nil {
			return err
		}
		uc.log.Debug().
			Int64("item_id", item.ID).
			Int64("movement_id", stockIn.ID).
			Int("quantity_before", item.Quantity).
			Int("quantity_after", newQty).
			Msg("entrada de stock revertida")
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("movement_id", stockInID).Msg("reversión de entrada abortada")
		return err
	}
	return nil
}

// stockInTx aplica una entrada usando los repositorios de la transacción en curso.
func (uc *MovementUseCase) stockInTx(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	stockInRepo repository.StockInRepository,
	in StockInInput,
) (int64, error) {
	item, err := itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return 0, err
	}
	mov := &entity.StockIn{
		ItemID:     item.ID,
		Quantity:   in.Quantity,
		InvoiceNo:  in.InvoiceNo,
		BatchNo:    in.BatchNo,
		ExpiryDate: strings.TrimSpace(in.ExpiryDate),
		CreatedAt:  uc.now().UTC(),
	}
	if err := stockInRepo.Create(ctx, mov); err != nil {
		return 0, err
	}
	newQty := item.Quantity + in.Quantity
	if err := itemRepo.UpdateQuantity(ctx, item.ID, newQty); err != nil {
		return 0, err
	}
	uc.log.Debug().
		Int64("item_id", item.ID).
		Int64("movement_id", mov.ID).
		Int("quantity_before", item.Quantity).
		Int("quantity_after", newQty).
		Msg("entrada de stock registrada")
	return mov.ID, nil
}

// saleTx aplica una venta usando los repositorios de la transacción en curso.
func (uc *MovementUseCase) saleTx(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	salesRepo repository.SalesItemRepository,
	in SaleInput,
) (int64, error) {
	item, err := itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return 0, err
	}
	if in.Quantity > item.Quantity {
		return 0, &domain.InsufficientStockError{
			ItemID:    item.ID,
			Requested: in.Quantity,
			Available: item.Quantity,
		}
	}
	unitCost := item.CostPrice
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
	}
	unitPrice := item.SellingPrice
	if in.UnitPrice != nil {
		unitPrice = *in.UnitPrice
	}
	mov := &entity.SalesItem{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Quantity:     in.Quantity,
		CostPrice:    unitCost,
		SellingPrice: unitPrice,
		CreatedAt:    uc.now().UTC(),
	}
	if err := salesRepo.Create(ctx, mov); err != nil {
		return 0, err
	}
	newQty := item.Quantity - in.Quantity
	if err := itemRepo.UpdateQuantity(ctx, item.ID, newQty); err != nil {
		return 0, err
	}
	uc.log.Debug().
		Int64("item_id", item.ID).
		Int64("movement_id", mov.ID).
		Int("quantity_before", item.Quantity).
		Int("quantity_after", newQty).
		Msg("venta registrada")
	return mov.ID, nil
}
