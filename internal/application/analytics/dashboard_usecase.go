// Package analytics contiene el resumen de ventas y las alertas de inventario del dashboard.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	domaininv "github.com/jhoicas/epharma-api/internal/domain/inventory"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

const (
	dashboardTopItems = 5 // número de items en el widget de más vendidos

	// DefaultExpiryWindowDays items que vencen dentro de esta ventana se reportan como próximos a vencer.
	DefaultExpiryWindowDays = 30
	// DefaultLowStockThreshold existencia a partir de la cual un item se reporta como bajo.
	DefaultLowStockThreshold = 5
)

// DashboardUseCase genera el resumen del día y del mes en curso (fechas UTC, igual que el
// reporte de ventas) y las alertas de vencimiento y existencia baja.
type DashboardUseCase struct {
	reportRepo        repository.SalesReportRepository
	itemRepo          repository.InventoryItemRepository
	expiryWindowDays  int
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso con los umbrales por defecto.
func NewDashboardUseCase(reportRepo repository.SalesReportRepository, itemRepo repository.InventoryItemRepository) *DashboardUseCase {
	return &DashboardUseCase{
		reportRepo:        reportRepo,
		itemRepo:          itemRepo,
		expiryWindowDays:  DefaultExpiryWindowDays,
		lowStockThreshold: DefaultLowStockThreshold,
		now:               time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres consultas en paralelo:
//  1. reporte de hoy          → TodaySales + TodayMargin
//  2. reporte del mes         → MonthlySales + MonthlyMargin + TopItems
//  3. catálogo de items       → ExpiringSoon, Expired, LowStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().UTC()
	today := domaininv.FormatDate(now)
	monthStart := domaininv.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))

	type reportResult struct {
		rows []*entity.SalesReport
		err  error
	}
	type itemsResult struct {
		items []*entity.InventoryItem
		err   error
	}

	todayCh := make(chan reportResult, 1)
	monthCh := make(chan reportResult, 1)
	itemsCh := make(chan itemsResult, 1)

	go func() {
		rows, err := uc.reportRepo.Get(ctx, repository.SalesReportFilter{StartDate: today, EndDate: today})
		todayCh <- reportResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.Get(ctx, repository.SalesReportFilter{StartDate: monthStart, EndDate: today})
		monthCh <- reportResult{rows, err}
	}()
	go func() {
		items, err := uc.itemRepo.List(ctx)
		itemsCh <- itemsResult{items, err}
	}()

	todayRes := <-todayCh
	monthRes := <-monthCh
	itemsRes := <-itemsCh

	if todayRes.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", todayRes.err)
	}
	if monthRes.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", monthRes.err)
	}
	if itemsRes.err != nil {
		return nil, fmt.Errorf("dashboard: items: %w", itemsRes.err)
	}

	todayRevenue, todayCost := sumRows(todayRes.rows)
	monthRevenue, monthCost := sumRows(monthRes.rows)

	out := &dto.DashboardSummaryDTO{
		DateLabel:     monthLabel(now),
		TodaySales:    todayRevenue.Round(2),
		TodayMargin:   todayRevenue.Sub(todayCost).Round(2),
		MonthlySales:  monthRevenue.Round(2),
		MonthlyMargin: monthRevenue.Sub(monthCost).Round(2),
		TopItems:      topItems(monthRes.rows, dashboardTopItems),
		ExpiringSoon:  []dto.ExpiryAlertDTO{},
		Expired:       []dto.ExpiryAlertDTO{},
		LowStock:      []dto.LowStockDTO{},
	}
	uc.fillAlerts(out, itemsRes.items, now)
	return out, nil
}

func (uc *DashboardUseCase) fillAlerts(out *dto.DashboardSummaryDTO, items []*entity.InventoryItem, now time.Time) {
	for _, it := range items {
		if it.Quantity <= uc.lowStockThreshold {
			out.LowStock = append(out.LowStock, dto.LowStockDTO{
				ItemID: it.ID, Name: it.Name, Brand: it.Brand, Quantity: it.Quantity,
			})
		}
		// Sin fecha (o fecha inválida) no genera alerta de vencimiento.
		if it.ExpiryDate == nil || !domaininv.ValidateExpiryDate(*it.ExpiryDate) {
			continue
		}
		days := it.DaysToExpiry(now)
		alert := dto.ExpiryAlertDTO{
			ItemID: it.ID, Name: it.Name, Brand: it.Brand,
			ExpiryDate: *it.ExpiryDate, DaysToExpiry: days, Quantity: it.Quantity,
		}
		switch {
		case days <= 0:
			out.Expired = append(out.Expired, alert)
		case days <= uc.expiryWindowDays:
			out.ExpiringSoon = append(out.ExpiringSoon, alert)
		}
	}
	sort.SliceStable(out.ExpiringSoon, func(i, j int) bool {
		return out.ExpiringSoon[i].DaysToExpiry < out.ExpiringSoon[j].DaysToExpiry
	})
	sort.SliceStable(out.LowStock, func(i, j int) bool {
		return out.LowStock[i].Quantity < out.LowStock[j].Quantity
	})
}

func sumRows(rows []*entity.SalesReport) (revenue, cost decimal.Decimal) {
	revenue, cost = decimal.Zero, decimal.Zero
	for _, r := range rows {
		revenue = revenue.Add(r.TotalRevenue)
		cost = cost.Add(r.TotalCost)
	}
	return revenue, cost
}

// topItems agrega las filas diarias por (nombre, marca) y ordena por cantidad vendida.
func topItems(rows []*entity.SalesReport, limit int) []dto.TopItemDTO {
	type key struct{ name, brand string }
	acc := map[key]*dto.TopItemDTO{}
	for _, r := range rows {
		k := key{r.ItemName, r.ItemBrand}
		t, ok := acc[k]
		if !ok {
			t = &dto.TopItemDTO{Name: r.ItemName, Brand: r.ItemBrand, Revenue: decimal.Zero}
			acc[k] = t
		}
		t.Quantity += r.Quantity
		t.Revenue = t.Revenue.Add(r.TotalRevenue)
	}
	out := make([]dto.TopItemDTO, 0, len(acc))
	for _, t := range acc {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
