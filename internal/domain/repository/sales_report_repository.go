package repository

import (
	"context"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
)

// SalesReportFilter rango de fechas (YYYY-MM-DD, inclusivo) y filtros opcionales por coincidencia parcial.
type SalesReportFilter struct {
	StartDate string
	EndDate   string
	ItemName  string
	ItemBrand string
}

// SalesReportRepository consulta de solo lectura agrupada por (fecha, nombre, marca), fecha descendente.
type SalesReportRepository interface {
	Get(ctx context.Context, filter SalesReportFilter) ([]*entity.SalesReport, error)
}
