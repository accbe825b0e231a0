package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

// ApplyStockInBatch aplica todas las entradas dentro de una sola transacción, en orden.
// El primer error revierte el lote completo y se devuelve sin cambios.
// Devuelve los ids asignados en el orden de envío.
func (uc *MovementUseCase) ApplyStockInBatch(ctx context.Context, inputs []StockInInput) ([]int64, error) {
	ids := make([]int64, 0, len(inputs))
	if len(inputs) == 0 {
		return ids, nil
	}
	batchID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		stockInRepo repository.StockInRepository,
		_ repository.SalesItemRepository,
	) error {
		for _, in := range inputs {
			if err := in.validate(); err != nil {
				return err
			}
			id, err := uc.stockInTx(ctx, itemRepo, stockInRepo, in)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batchID).Int("size", len(inputs)).Msg("lote de entradas revertido")
		return nil, err
	}
	uc.log.Info().Str("batch_id", batchID).Int("size", len(inputs)).Msg("lote de entradas confirmado")
	return ids, nil
}

// ApplySaleBatch aplica todas las ventas dentro de una sola transacción, en orden. Cada venta
// ve la existencia que dejaron las anteriores del mismo lote; si alguna excede la existencia
// el lote completo se revierte con *domain.InsufficientStockError.
func (uc *MovementUseCase) ApplySaleBatch(ctx context.Context, inputs []SaleInput) ([]int64, error) {
	ids := make([]int64, 0, len(inputs))
	if len(inputs) == 0 {
		return ids, nil
	}
	batchID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.StockInRepository,
		salesRepo repository.SalesItemRepository,
	) error {
		for _, in := range inputs {
			if err := in.validate(); err != nil {
				return err
			}
			id, err := uc.saleTx(ctx, itemRepo, salesRepo, in)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batchID).Int("size", len(inputs)).Msg("lote de ventas revertido")
		return nil, err
	}
	uc.log.Info().Str("batch_id", batchID).Int("size", len(inputs)).Msg("lote de ventas confirmado")
	return ids, nil
}
