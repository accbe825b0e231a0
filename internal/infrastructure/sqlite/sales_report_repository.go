package sqlite

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
	domaininv "github.com/jhoicas/epharma-api/internal/domain/inventory"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
	"github.com/jhoicas/epharma-api/pkg/config"
)

var _ repository.SalesReportRepository = (*SalesReportRepo)(nil)

// SalesReportRepo reporte de ventas sobre SQLite. El JOIN y los filtros de fecha (UTC),
// nombre y marca van en SQL; la agrupación por día se hace en Go para sumar precios con
// decimal exacto.
type SalesReportRepo struct {
	db     *gorm.DB
	tables config.TablesConfig
}

// NewSalesReportRepository construye el adaptador.
func NewSalesReportRepository(db *gorm.DB, tables config.TablesConfig) *SalesReportRepo {
	return &SalesReportRepo{db: db, tables: tables}
}

type reportLine struct {
	ItemName     string
	ItemBrand    string
	Quantity     int
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	CreatedAt    time.Time
}

type reportKey struct {
	date, name, brand string
}

// Get devuelve las filas agrupadas por (fecha UTC, nombre, marca), fecha descendente.
func (r *SalesReportRepo) Get(ctx context.Context, f repository.SalesReportFilter) ([]*entity.SalesReport, error) {
	query := fmt.Sprintf(`
		SELECT i.name AS item_name, i.brand AS item_brand, s.quantity, s.cost_price, s.selling_price, s.created_at
		FROM %s s
		JOIN %s i ON i.id = s.item_id
		WHERE date(s.created_at) BETWEEN ? AND ?
		  AND i.name LIKE ? ESCAPE '\' AND i.brand LIKE ? ESCAPE '\'`,
		r.tables.SalesItems, r.tables.InventoryItems)

	var lines []reportLine
	if err := r.db.WithContext(ctx).
		Raw(query, f.StartDate, f.EndDate, likePattern(f.ItemName), likePattern(f.ItemBrand)).
		Scan(&lines).Error; err != nil {
		return nil, mapError("sales report", err)
	}

	groups := map[reportKey]*entity.SalesReport{}
	for _, l := range lines {
		day := domaininv.FormatDate(l.CreatedAt.UTC())
		k := reportKey{day, l.ItemName, l.ItemBrand}
		g, ok := groups[k]
		if !ok {
			saleDate, _ := domaininv.ParseDate(day)
			g = &entity.SalesReport{
				SaleDate:     saleDate,
				ItemName:     l.ItemName,
				ItemBrand:    l.ItemBrand,
				TotalCost:    decimal.Zero,
				TotalRevenue: decimal.Zero,
			}
			groups[k] = g
		}
		g.Quantity += l.Quantity
		g.TotalCost = g.TotalCost.Add(domaininv.LineTotal(l.Quantity, l.CostPrice))
		g.TotalRevenue = g.TotalRevenue.Add(domaininv.LineTotal(l.Quantity, l.SellingPrice))
	}

	list := make([]*entity.SalesReport, 0, len(groups))
	for _, g := range groups {
		g.TotalProfit = g.TotalRevenue.Sub(g.TotalCost)
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].SaleDate.Equal(list[j].SaleDate) {
			return list[i].SaleDate.After(list[j].SaleDate)
		}
		if list[i].ItemName != list[j].ItemName {
			return list[i].ItemName < list[j].ItemName
		}
		return list[i].ItemBrand < list[j].ItemBrand
	})
	return list, nil
}
