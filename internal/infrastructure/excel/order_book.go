// Package excel implementa el exporte del libro de órdenes en XLSX.
package excel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/logistica-api/internal/application/documents"
)

var _ documents.OrderBookExporter = (*OrderBookExporter)(nil)

// OrderBookExporter implementa documents.OrderBookExporter usando excelize.
// Dos hojas: un resumen con conteos y totales por estado, y el detalle con
// una fila por orden.
type OrderBookExporter struct{}

// NewOrderBookExporter construye el exportador.
func NewOrderBookExporter() *OrderBookExporter { return &OrderBookExporter{} }

// ExportOrderBook genera el libro y devuelve sus bytes.
func (e *OrderBookExporter) ExportOrderBook(_ context.Context, book documents.OrderBook) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumen"
	file.SetSheetName("Sheet1", summarySheet)
	if err := writeSummary(file, summarySheet, book); err != nil {
		return nil, err
	}

	detailSheet := "Órdenes"
	if _, err := file.NewSheet(detailSheet); err != nil {
		return nil, err
	}
	if err := writeDetail(file, detailSheet, book); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(file *excelize.File, sheet string, book documents.OrderBook) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Libro de órdenes")
	set("A2", "Generado")
	set("B2", book.GeneratedAt.Format("02/01/2006 15:04"))
	set("A3", "Total de órdenes")
	set("B3", len(book.Rows))

	counts := make(map[string]int)
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, r := range book.Rows {
		if _, ok := counts[r.Status]; !ok {
			order = append(order, r.Status)
			totals[r.Status] = decimal.Zero
		}
		counts[r.Status]++
		totals[r.Status] = totals[r.Status].Add(r.TotalAmount)
	}

	tableRow := 5
	set(fmt.Sprintf("A%d", tableRow), "Estado")
	set(fmt.Sprintf("B%d", tableRow), "Órdenes")
	set(fmt.Sprintf("C%d", tableRow), "Monto total")
	for i, status := range order {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), status)
		set(fmt.Sprintf("B%d", row), counts[status])
		set(fmt.Sprintf("C%d", row), totals[status].String())
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "C", 16)
	return nil
}

func writeDetail(file *excelize.File, sheet string, book documents.OrderBook) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"N° orden", "Proveedor", "Cliente", "Fecha de entrega", "Estado", "Líneas", "Monto total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, h)
	}

	for i, r := range book.Rows {
		row := i + 2
		set(fmt.Sprintf("A%d", row), r.OrderNumber)
		set(fmt.Sprintf("B%d", row), r.SupplierName)
		set(fmt.Sprintf("C%d", row), r.CustomerName)
		set(fmt.Sprintf("D%d", row), r.DeliveryDate.Format("02/01/2006"))
		set(fmt.Sprintf("E%d", row), r.Status)
		set(fmt.Sprintf("F%d", row), r.LineCount)
		set(fmt.Sprintf("G%d", row), r.TotalAmount.String())
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "C", 30)
	_ = file.SetColWidth(sheet, "D", "G", 16)
	return nil
}
