package documents

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryDocument es el modelo finalizado que consume el renderizador PDF:
// cabecera más filas planas ya reconciliadas, con los nombres de proveedor,
// cliente y conductor resueltos desde sus llaves foráneas. Una remisión puede
// abarcar varios proveedores porque sus líneas referencian órdenes distintas;
// el renderizador agrupa por proveedor.
type DeliveryDocument struct {
	Title     string // "REMISIÓN DE ENTREGA" | "ORDEN DE ENTREGA"
	Number    string
	IssueDate time.Time
	Remarks   string
	Rows      []DocumentRow
}

// DocumentRow fila plana del documento imprimible.
type DocumentRow struct {
	SupplierName    string
	CustomerName    string
	DriverName      string
	ItemDescription string
	Unit            string
	PlannedQty      decimal.Decimal
	ActualQty       decimal.Decimal // cero en documentos de orden (aún sin entrega)
	OrderNumber     string
	Destination     string
}

// OrderBook es el libro de órdenes que consume el exportador Excel.
type OrderBook struct {
	GeneratedAt time.Time
	Rows        []OrderBookRow
}

// OrderBookRow resumen de una orden en el libro.
type OrderBookRow struct {
	OrderNumber  string
	SupplierName string
	CustomerName string
	DeliveryDate time.Time
	Status       string
	LineCount    int
	TotalAmount  decimal.Decimal
}

// InvoiceDocument es el modelo que consume el exportador XML (integración contable).
type InvoiceDocument struct {
	Number      string
	IssueDate   time.Time
	Status      string
	CompanyName string
	CompanyTax  string
	TotalAmount decimal.Decimal
	Lines       []InvoiceDocumentLine
}

// InvoiceDocumentLine línea facturada en el documento exportable.
type InvoiceDocumentLine struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}
