// Package pdf implementa la representación imprimible de los documentos de
// entrega (remisión y orden) usando Maroto v2.
//
// Layout de cada página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° documento │ Fecha de emisión            │
//	│  Proveedor: X   │   Clientes: A, B (distintos del grupo)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Descripción | Cant. plan | N° orden | Cant.    │
//	│         entregada | Destino                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Proveedor      │  Conductor      │  Cliente        │
//	└─────────────────────────────────────────────────────────────┘
//
// Las filas se agrupan por proveedor (una remisión puede abarcar órdenes de
// proveedores distintos); cada grupo inicia su propia secuencia de páginas y
// la cabecera y el bloque de firmas se repiten en cada página del grupo.
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/logistica-api/internal/application/documents"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Filas de tabla por página (dejando espacio a cabecera y firmas en A4).
const rowsPerPage = 16

var _ documents.DeliveryPDFRenderer = (*DeliveryRenderer)(nil)

// DeliveryRenderer implementa documents.DeliveryPDFRenderer usando Maroto v2.
type DeliveryRenderer struct{}

// NewDeliveryRenderer construye el renderizador.
func NewDeliveryRenderer() *DeliveryRenderer { return &DeliveryRenderer{} }

// RenderDelivery genera el PDF del documento de entrega y devuelve sus bytes.
// Composición explícita de páginas: Maroto pagina de corrido y repetiría una
// sola cabecera global, así que armamos cada página a mano para que cabecera
// y firmas acompañen a su grupo de proveedor.
func (r *DeliveryRenderer) RenderDelivery(_ context.Context, doc documents.DeliveryDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title+" "+doc.Number, true).
		WithDisableAutoPageBreak(true).
		Build()

	m := maroto.New(cfg)

	for _, group := range groupBySupplier(doc.Rows) {
		customers := strings.Join(distinctCustomers(group.rows), ", ")
		for _, pageRows := range paginate(group.rows, rowsPerPage) {
			p := page.New()
			p.Add(headerRows(doc, group.supplier, customers)...)
			p.Add(tableHeaderRow())
			p.Add(bodyRows(pageRows)...)
			p.Add(signatureRows(group.supplier, pageRows)...)
			m.AddPages(p)
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Agrupación y paginación ───────────────────────────────────────────────────

type supplierGroup struct {
	supplier string
	rows     []documents.DocumentRow
}

// groupBySupplier agrupa las filas por proveedor preservando el orden de
// primera aparición.
func groupBySupplier(rows []documents.DocumentRow) []supplierGroup {
	var groups []supplierGroup
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.SupplierName]
		if !ok {
			i = len(groups)
			index[r.SupplierName] = i
			groups = append(groups, supplierGroup{supplier: r.SupplierName})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	return groups
}

// distinctCustomers devuelve los clientes distintos del grupo en orden de
// primera aparición (para la cabecera del grupo, no del documento completo).
func distinctCustomers(rows []documents.DocumentRow) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if r.CustomerName != "" && !seen[r.CustomerName] {
			seen[r.CustomerName] = true
			out = append(out, r.CustomerName)
		}
	}
	return out
}

// paginate parte las filas en páginas de a lo sumo perPage filas.
func paginate(rows []documents.DocumentRow, perPage int) [][]documents.DocumentRow {
	var pages [][]documents.DocumentRow
	for len(rows) > perPage {
		pages = append(pages, rows[:perPage])
		rows = rows[perPage:]
	}
	if len(rows) > 0 {
		pages = append(pages, rows)
	}
	return pages
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: título + número (izq), fecha (der) y la línea proveedor/clientes.
func headerRows(doc documents.DeliveryDocument, supplier, customers string) []core.Row {
	rows := []core.Row{
		row.New(16).Add(
			col.New(7).Add(
				text.New(doc.Title, props.Text{
					Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
				}),
				text.New("N° "+doc.Number, props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 9,
				}),
			),
			col.New(5).Add(
				text.New("Fecha de emisión", props.Text{
					Size: 8, Align: align.Right, Color: colorGray, Top: 2,
				}),
				text.New(doc.IssueDate.Format("02/01/2006"), props.Text{
					Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
				}),
			),
		),
		row.New(10).Add(
			col.New(6).Add(
				text.New("Proveedor", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(supplier, props.Text{Size: 9, Top: 5}),
			),
			col.New(6).Add(
				text.New("Clientes", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(customers, props.Text{Size: 9, Top: 5}),
			),
		),
	}
	if doc.Remarks != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Observaciones: "+doc.Remarks, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	rows = append(rows, line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	return rows
}

// tableHeaderRow: cabecera de la tabla del cuerpo.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Descripción", 3, align.Left),
		h("Cant. plan.", 1, align.Right),
		h("N° orden", 2, align.Center),
		h("Cant. entregada", 2, align.Right),
		h("Destino", 3, align.Left),
	)
}

// bodyRows: una fila por línea del documento. En documentos de orden (aún sin
// entrega) la cantidad entregada va vacía.
func bodyRows(rows []documents.DocumentRow) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		actual := ""
		if !r.ActualQty.IsZero() {
			actual = r.ActualQty.String() + " " + r.Unit
		}
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				r.ItemDescription,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				r.PlannedQty.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				r.OrderNumber,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				actual,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				r.Destination,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return out
}

// signatureRows: bloque de firmas proveedor / conductor / cliente, repetido
// en cada página.
func signatureRows(supplier string, rows []documents.DocumentRow) []core.Row {
	driver := ""
	customer := ""
	if len(rows) > 0 {
		driver = rows[0].DriverName
		customer = rows[0].CustomerName
	}
	sig := func(role, name string) core.Col {
		return col.New(4).Add(
			text.New("_______________________", props.Text{
				Size: 9, Align: align.Center, Top: 12, Color: colorGray,
			}),
			text.New(role, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 18,
			}),
			text.New(name, props.Text{
				Size: 8, Align: align.Center, Top: 23, Color: colorGray,
			}),
		)
	}
	return []core.Row{
		line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(30).Add(
			sig("Proveedor", supplier),
			sig("Conductor", driver),
			sig("Cliente", customer),
		),
	}
}
