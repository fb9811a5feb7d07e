package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"abarrotes-pos/models"
)

const (
	sheetVentas     = "Ventas"
	sheetInventario = "Inventario"
	sheetResumen    = "ResumenCaja"
)

// BuildSalesReport arma el libro del reporte de ventas: una fila por venta y
// al final, tras una fila en blanco, el total de ingresos.
func BuildSalesReport(ventas []models.Sale) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetVentas); err != nil {
		return nil, err
	}

	// Add headers
	f.SetCellValue(sheetVentas, "A1", "Fecha")
	f.SetCellValue(sheetVentas, "B1", "Usuario")
	f.SetCellValue(sheetVentas, "C1", "Total")
	f.SetCellValue(sheetVentas, "D1", "Productos")
	f.SetCellValue(sheetVentas, "E1", "MetodoPago")

	// Add data
	var totalIngresos models.Money
	row := 2
	for _, v := range ventas {
		f.SetCellValue(sheetVentas, "A"+fmt.Sprint(row), v.Fecha.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetVentas, "B"+fmt.Sprint(row), v.Usuario)
		f.SetCellValue(sheetVentas, "C"+fmt.Sprint(row), v.Total.Format())
		f.SetCellValue(sheetVentas, "D"+fmt.Sprint(row), lineItemSummary(v.Productos))
		f.SetCellValue(sheetVentas, "E"+fmt.Sprint(row), string(v.MetodoPago))
		totalIngresos += v.Total
		row++
	}

	if len(ventas) > 0 {
		row++ // fila en blanco antes del total
	}
	f.SetCellValue(sheetVentas, "C"+fmt.Sprint(row), fmt.Sprintf("TOTAL INGRESOS: $%s", totalIngresos.Format()))

	return f, nil
}

// BuildInventoryReport arma el libro del reporte de inventario.
func BuildInventoryReport(productos []models.Product) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetInventario); err != nil {
		return nil, err
	}

	f.SetCellValue(sheetInventario, "A1", "Codigo")
	f.SetCellValue(sheetInventario, "B1", "Nombre")
	f.SetCellValue(sheetInventario, "C1", "PrecioProveedor")
	f.SetCellValue(sheetInventario, "D1", "PrecioCliente")
	f.SetCellValue(sheetInventario, "E1", "Stock")
	f.SetCellValue(sheetInventario, "F1", "Categoria")

	for i, p := range productos {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheetInventario, "A"+row, p.Codigo)
		f.SetCellValue(sheetInventario, "B"+row, p.Nombre)
		f.SetCellValue(sheetInventario, "C"+row, p.PrecioProveedor.Format())
		f.SetCellValue(sheetInventario, "D"+row, p.PrecioCliente.Format())
		f.SetCellValue(sheetInventario, "E"+row, p.Stock)
		f.SetCellValue(sheetInventario, "F"+row, p.Categoria)
	}

	return f, nil
}

// BuildTillReconciliation arma el resumen del corte de caja, una etiqueta y
// su valor por fila.
func BuildTillReconciliation(rec models.Reconciliation) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetResumen); err != nil {
		return nil, err
	}

	filas := [][2]string{
		{"Usuario", rec.Usuario},
		{"Ventas (ingresos)", rec.ComputedRevenue.Format()},
		{"Productos vendidos", rec.LineItemSummary},
		{"Apertura", rec.OpeningCash.Format()},
		{"Entrega", rec.HandIn.Format()},
		{"Desvío", rec.Desvio.Format()},
		{"Fecha", rec.ClosedAt.Format("2006-01-02 15:04:05")},
	}
	for i, fila := range filas {
		row := fmt.Sprint(i + 1)
		f.SetCellValue(sheetResumen, "A"+row, fila[0])
		f.SetCellValue(sheetResumen, "B"+row, fila[1])
	}

	return f, nil
}

// SalesReportFilename replica el nombre de descarga original.
func SalesReportFilename(periodo string, ahora time.Time) string {
	return fmt.Sprintf("reporte_ventas_%s_%d.xlsx", periodo, ahora.UnixMilli())
}

func InventoryReportFilename(ahora time.Time) string {
	return fmt.Sprintf("reporte_inventario_%d.xlsx", ahora.UnixMilli())
}

func ReconciliationFilename(usuario string, ahora time.Time) string {
	user := strings.ReplaceAll(usuario, "@", "_")
	return fmt.Sprintf("corte_caja_%s_%d.xlsx", user, ahora.UnixMilli())
}

func lineItemSummary(items []models.LineItem) string {
	partes := make([]string, 0, len(items))
	for _, li := range items {
		partes = append(partes, fmt.Sprintf("%s (x%d)", li.Nombre, li.Cantidad))
	}
	return strings.Join(partes, ", ")
}
