package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
	"github.com/jhoicas/epharma-api/pkg/config"
)

var _ repository.SalesReportRepository = (*SalesReportRepo)(nil)

// SalesReportRepo reporte de ventas agregado por día (UTC), nombre y marca del item vigente.
// Las ventas de items eliminados no aparecen.
type SalesReportRepo struct {
	q      Querier
	tables config.TablesConfig
}

// NewSalesReportRepository construye el adaptador.
func NewSalesReportRepository(q Querier, tables config.TablesConfig) *SalesReportRepo {
	return &SalesReportRepo{q: q, tables: tables}
}

// Get devuelve las filas del reporte, fecha descendente.
func (r *SalesReportRepo) Get(ctx context.Context, f repository.SalesReportFilter) ([]*entity.SalesReport, error) {
	query := fmt.Sprintf(`
		SELECT (s.created_at AT TIME ZONE 'UTC')::date AS sale_date,
			i.name, i.brand,
			SUM(s.quantity),
			SUM(s.quantity * s.cost_price),
			SUM(s.quantity * s.selling_price)
		FROM %s s
		JOIN %s i ON i.id = s.item_id
		WHERE (s.created_at AT TIME ZONE 'UTC')::date BETWEEN $1::date AND $2::date
			AND i.name ILIKE $3
			AND i.brand ILIKE $4
		GROUP BY sale_date, i.name, i.brand
		ORDER BY sale_date DESC, i.name, i.brand`, r.tables.SalesItems, r.tables.InventoryItems)

	rows, err := r.q.Query(ctx, query, f.StartDate, f.EndDate, likePattern(f.ItemName), likePattern(f.ItemBrand))
	if err != nil {
		return nil, mapError("sales report", err)
	}
	defer rows.Close()

	var list []*entity.SalesReport
	for rows.Next() {
		var rep entity.SalesReport
		if err := rows.Scan(
			&rep.SaleDate, &rep.ItemName, &rep.ItemBrand,
			&rep.Quantity, &rep.TotalCost, &rep.TotalRevenue,
		); err != nil {
			return nil, mapError("sales report", err)
		}
		rep.TotalProfit = rep.TotalRevenue.Sub(rep.TotalCost)
		list = append(list, &rep)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("sales report", err)
	}
	return list, nil
}
