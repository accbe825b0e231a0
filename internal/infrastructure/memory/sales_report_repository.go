package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/epharma-api/internal/domain/entity"
	domaininv "github.com/jhoicas/epharma-api/internal/domain/inventory"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.SalesReportRepository = (*SalesReportRepo)(nil)

// SalesReportRepo agrega las ventas en memoria con la misma semántica que la vista SQL:
// solo ventas cuyo item sigue existiendo, agrupadas por (fecha, nombre, marca).
type SalesReportRepo struct {
	b binding
}

type reportKey struct {
	date, name, brand string
}

// Get devuelve el reporte filtrado, fecha descendente.
func (r *SalesReportRepo) Get(_ context.Context, f repository.SalesReportFilter) ([]*entity.SalesReport, error) {
	groups := map[reportKey]*entity.SalesReport{}
	err := r.b.do(func(st *state) error {
		for _, s := range st.sales {
			item, ok := st.items[s.ItemID]
			if !ok {
				continue
			}
			day := domaininv.FormatDate(s.CreatedAt.UTC())
			if day < f.StartDate || day > f.EndDate {
				continue
			}
			if f.ItemName != "" && !containsFold(item.Name, f.ItemName) {
				continue
			}
			if f.ItemBrand != "" && !containsFold(item.Brand, f.ItemBrand) {
				continue
			}
			k := reportKey{day, item.Name, item.Brand}
			g, ok := groups[k]
			if !ok {
				saleDate, _ := domaininv.ParseDate(day)
				g = &entity.SalesReport{
					SaleDate:     saleDate,
					ItemName:     item.Name,
					ItemBrand:    item.Brand,
					TotalCost:    decimal.Zero,
					TotalRevenue: decimal.Zero,
					TotalProfit:  decimal.Zero,
				}
				groups[k] = g
			}
			g.Quantity += s.Quantity
			g.TotalCost = g.TotalCost.Add(s.TotalCost())
			g.TotalRevenue = g.TotalRevenue.Add(s.TotalSelling())
			g.TotalProfit = g.TotalRevenue.Sub(g.TotalCost)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	list := make([]*entity.SalesReport, 0, len(groups))
	for _, g := range groups {
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
