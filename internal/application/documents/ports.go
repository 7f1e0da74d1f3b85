package documents

import "context"

// DeliveryPDFRenderer produce la representación imprimible de un documento de
// entrega: grupos por proveedor, paginación automática y bloques de cabecera
// y firmas repetidos en cada página. No persiste ni transmite el resultado.
type DeliveryPDFRenderer interface {
	RenderDelivery(ctx context.Context, doc DeliveryDocument) ([]byte, error)
}

// OrderBookExporter produce el libro de órdenes en formato XLSX.
type OrderBookExporter interface {
	ExportOrderBook(ctx context.Context, book OrderBook) ([]byte, error)
}

// InvoiceXMLExporter produce la representación XML de una factura para
// importación en sistemas contables.
type InvoiceXMLExporter interface {
	ExportInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}
