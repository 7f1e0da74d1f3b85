package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/logistica-api/internal/application/documents"
)

func docRow(supplier, customer, item string) documents.DocumentRow {
	return documents.DocumentRow{
		SupplierName:    supplier,
		CustomerName:    customer,
		DriverName:      "Juan Pérez",
		ItemDescription: item,
		Unit:            "m3",
		PlannedQty:      decimal.NewFromInt(10),
		ActualQty:       decimal.NewFromInt(8),
		OrderNumber:     "DO-001",
		Destination:     "Km 4 vía al puerto",
	}
}

// Una remisión cuyas líneas abarcan dos proveedores produce dos grupos
// independientes, y la lista de clientes de cada grupo sale solo de las
// filas de ese grupo.
func TestGroupBySupplier_DosProveedores(t *testing.T) {
	rows := []documents.DocumentRow{
		docRow("Agregados del Norte", "Constructora Delta", "Arena lavada"),
		docRow("Cantera del Sur", "Obras Civiles SAS", "Triturado 3/4"),
		docRow("Agregados del Norte", "Urbanizadora Real", "Arena lavada"),
	}

	groups := groupBySupplier(rows)
	require.Len(t, groups, 2)
	assert.Equal(t, "Agregados del Norte", groups[0].supplier, "orden de primera aparición")
	assert.Equal(t, "Cantera del Sur", groups[1].supplier)
	assert.Len(t, groups[0].rows, 2)
	assert.Len(t, groups[1].rows, 1)

	assert.Equal(t, []string{"Constructora Delta", "Urbanizadora Real"}, distinctCustomers(groups[0].rows))
	assert.Equal(t, []string{"Obras Civiles SAS"}, distinctCustomers(groups[1].rows))
}

func TestDistinctCustomers_SinDuplicados(t *testing.T) {
	rows := []documents.DocumentRow{
		docRow("P", "Constructora Delta", "a"),
		docRow("P", "Constructora Delta", "b"),
		docRow("P", "Obras Civiles SAS", "c"),
	}
	assert.Equal(t, []string{"Constructora Delta", "Obras Civiles SAS"}, distinctCustomers(rows))
}

func TestPaginate(t *testing.T) {
	rows := make([]documents.DocumentRow, 0, 35)
	for i := 0; i < 35; i++ {
		rows = append(rows, docRow("P", "C", "item"))
	}

	pages := paginate(rows, rowsPerPage)
	require.Len(t, pages, 3, "35 filas con 16 por página → 3 páginas")
	assert.Len(t, pages[0], 16)
	assert.Len(t, pages[1], 16)
	assert.Len(t, pages[2], 3)

	assert.Empty(t, paginate(nil, rowsPerPage))
}

// El render completo produce un PDF no vacío.
func TestRenderDelivery_ProducePDF(t *testing.T) {
	doc := documents.DeliveryDocument{
		Title:     "REMISIÓN DE ENTREGA",
		Number:    "DN-001",
		IssueDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Remarks:   "Entrega parcial",
		Rows: []documents.DocumentRow{
			docRow("Agregados del Norte", "Constructora Delta", "Arena lavada"),
			docRow("Cantera del Sur", "Obras Civiles SAS", "Triturado 3/4"),
		},
	}

	out, err := NewDeliveryRenderer().RenderDelivery(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
