// Package pdf implementa la representación gráfica del reporte de alertas de
// stock bajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  "Reporte de stock bajo" + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Bodega | Stock | Umbral | Días      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de alertas + proveedores a contactar         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinv "github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinv.LowStockReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa inventory.LowStockReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockReport(
	_ context.Context,
	company *entity.Company,
	generatedAt time.Time,
	alerts []dto.LowStockAlertDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock bajo", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(alerts) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Sin alertas: ningún producto está por debajo de su umbral.", props.Text{
				Size: 10, Top: 4, Align: align.Center, Color: colorGray,
			}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		for _, r := range tableAlertRows(alerts) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(summaryRow(alerts))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la empresa (izq) y título + fecha de generación (der).
func headerRow(company *entity.Company, generatedAt time.Time) core.Row {
	fecha := generatedAt.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de alertas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Bodega", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Umbral", 1, align.Right),
		h("Días", 1, align.Right),
		h("Proveedor", 2, align.Left),
	)
}

// tableAlertRows: una fila por alerta, en el mismo orden del reporte
// (urgencia ascendente).
func tableAlertRows(alerts []dto.LowStockAlertDTO) []core.Row {
	cell := func(s string, size int, a align.Type, color *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
		}))
	}

	result := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		daysColor := colorGray
		if a.DaysUntilStockout <= 7 {
			daysColor = colorAlert
		}
		supplier := "—"
		if a.Supplier != nil {
			supplier = a.Supplier.Name + " <" + a.Supplier.ContactEmail + ">"
		}
		result = append(result, row.New(7).Add(
			cell(a.SKU, 2, align.Left, nil),
			cell(a.ProductName, 3, align.Left, nil),
			cell(a.WarehouseName, 2, align.Left, nil),
			cell(strconv.FormatInt(a.CurrentStock, 10), 1, align.Right, nil),
			cell(strconv.FormatInt(a.Threshold, 10), 1, align.Right, nil),
			cell(strconv.Itoa(a.DaysUntilStockout), 1, align.Right, daysColor),
			cell(supplier, 2, align.Left, colorGray),
		))
	}
	return result
}

// summaryRow: total de alertas y cuántas tienen proveedor para contactar.
func summaryRow(alerts []dto.LowStockAlertDTO) core.Row {
	withSupplier := 0
	for _, a := range alerts {
		if a.Supplier != nil {
			withSupplier++
		}
	}
	resumen := fmt.Sprintf("Total de alertas: %d   |   Con proveedor asignado: %d",
		len(alerts), withSupplier)

	return row.New(10).Add(col.New(12).Add(
		text.New(resumen, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorPrimary,
		}),
	))
}
