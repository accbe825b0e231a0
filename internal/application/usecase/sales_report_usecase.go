package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/domain"
	domaininv "github.com/jhoicas/epharma-api/internal/domain/inventory"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

// SalesReportPDFGenerator puerto de salida para exportar el reporte de ventas a PDF.
type SalesReportPDFGenerator interface {
	GenerateSalesReportPDF(ctx context.Context, report *dto.SalesReportResponse) ([]byte, error)
}

// SalesReportUseCase reporte de ventas agrupado por (fecha, nombre, marca).
type SalesReportUseCase struct {
	repo      repository.SalesReportRepository
	generator SalesReportPDFGenerator
}

// NewSalesReportUseCase construye el caso de uso. generator puede ser nil si no se exporta PDF.
func NewSalesReportUseCase(repo repository.SalesReportRepository, generator SalesReportPDFGenerator) *SalesReportUseCase {
	return &SalesReportUseCase{repo: repo, generator: generator}
}

// Get consulta el reporte entre start y end (YYYY-MM-DD, inclusivo) y calcula los totales generales.
func (uc *SalesReportUseCase) Get(ctx context.Context, q dto.SalesReportQuery) (*dto.SalesReportResponse, error) {
	start := strings.TrimSpace(q.Start)
	end := strings.TrimSpace(q.End)
	// Fechas de calendario reales: el motor rechaza días como 2023-04-31.
	if !isCalendarDate(start) || !isCalendarDate(end) || start > end {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.Get(ctx, repository.SalesReportFilter{
		StartDate: start,
		EndDate:   end,
		ItemName:  strings.TrimSpace(q.Name),
		ItemBrand: strings.TrimSpace(q.Brand),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.SalesReportResponse{
		Start:        start,
		End:          end,
		Rows:         make([]dto.SalesReportRow, 0, len(rows)),
		TotalCost:    decimal.Zero,
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.SalesReportRow{
			SaleDate:     domaininv.FormatDate(r.SaleDate),
			ItemName:     r.ItemName,
			ItemBrand:    r.ItemBrand,
			Quantity:     r.Quantity,
			TotalCost:    r.TotalCost,
			TotalRevenue: r.TotalRevenue,
			TotalProfit:  r.TotalProfit,
		})
		out.TotalCost = out.TotalCost.Add(r.TotalCost)
		out.TotalRevenue = out.TotalRevenue.Add(r.TotalRevenue)
	}
	out.TotalProfit = out.TotalRevenue.Sub(out.TotalCost)
	return out, nil
}

// GetPDF genera el reporte y lo exporta a PDF. Devuelve los bytes y un nombre de archivo sugerido.
func (uc *SalesReportUseCase) GetPDF(ctx context.Context, q dto.SalesReportQuery) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("%w: exportación PDF no configurada", domain.ErrInvalidInput)
	}
	report, err := uc.Get(ctx, q)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateSalesReportPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("reporte_ventas_%s_%s.pdf", report.Start, report.End), nil
}

func isCalendarDate(s string) bool {
	_, err := domaininv.ParseDate(s)
	return err == nil
}
