// Package pdf genera el comprobante de venta (recibo) en PDF usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  N° de venta + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Cajero / Método de pago / Membresía                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Puntos / TOTAL              │
//	│  Efectivo recibido / Cambio                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la venta + puntos ganados           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 90, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// StoreInfo identidad de la tienda que encabeza el recibo.
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

// ReceiptGenerator genera el comprobante PDF de una venta confirmada.
type ReceiptGenerator struct {
	store StoreInfo
}

// NewReceiptGenerator construye el generador con la identidad de la tienda.
func NewReceiptGenerator(store StoreInfo) *ReceiptGenerator {
	if store.Name == "" {
		store.Name = "Retail POS"
	}
	return &ReceiptGenerator{store: store}
}

// GenerateReceipt genera el PDF del recibo y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceipt(sale *dto.SaleResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(g.store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(saleInfoRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(sale.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(sale)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(sale)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la tienda (izq) y número de venta + fecha (der).
func (g *ReceiptGenerator) headerRow(sale *dto.SaleResponse) core.Row {
	fecha := sale.CreatedAt.Format("02/01/2006 15:04")
	contacto := g.store.Address
	if g.store.Phone != "" {
		if contacto != "" {
			contacto += "   |   "
		}
		contacto += "Tel: " + g.store.Phone
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(contacto, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// saleInfoRow: cajero, método de pago y membresía.
func saleInfoRow(sale *dto.SaleResponse) core.Row {
	membresia := "—"
	if sale.MemberPhone != "" {
		membresia = sale.MemberPhone
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Cajero: %s   |   Pago: %s   |   Membresía: %s",
				sale.CashierName,
				paymentLabel(sale.PaymentMethod),
				membresia,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de venta, con los snapshots de nombre y precio.
func tableItemRows(items []dto.SaleItemResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				lineTotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: bloque de totales alineado a la derecha, con efectivo y cambio si aplica.
func totalsRows(sale *dto.SaleResponse) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	labels := []core.Component{label("Subtotal:")}
	values := []core.Component{value(sale.Subtotal.StringFixed(2))}
	if !sale.Discount.IsZero() {
		labels = append(labels, label("Descuento:"))
		values = append(values, value("-"+sale.Discount.StringFixed(2)))
	}
	if sale.PointsUsed > 0 {
		labels = append(labels, label("Puntos usados:"))
		values = append(values, value(fmt.Sprintf("-%d.00", sale.PointsUsed)))
	}

	rows := []core.Row{
		row.New(float64(5*len(labels))).Add(
			col.New(6),
			col.New(3).Add(labels...),
			col.New(3).Add(values...),
		),
		row.New(8).Add(
			col.New(6),
			col.New(3).Add(text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(sale.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 1,
			})),
		),
	}

	if sale.CashReceived != nil && sale.Change != nil {
		rows = append(rows, row.New(10).Add(
			col.New(6),
			col.New(3).Add(
				label("Recibido:"),
				label("Cambio:"),
			),
			col.New(3).Add(
				value(sale.CashReceived.StringFixed(2)),
				value(sale.Change.StringFixed(2)),
			),
		))
	}
	return rows
}

// footerRows: QR con el id de la venta y resumen de puntos de la membresía.
func footerRows(sale *dto.SaleResponse) []core.Row {
	rows := []core.Row{
		row.New(30).Add(
			col.New(3).Add(code.NewQr(sale.ID, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(9).Add(
				text.New("Escanea el código QR para consultar esta venta.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("¡Gracias por su compra!", props.Text{
					Style: fontstyle.Bold, Size: 11, Top: 14,
					Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
	if sale.MemberID != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Puntos ganados en esta compra: %d", sale.PointsEarned), props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
	}
	return rows
}

// shortID devuelve un identificador legible para el encabezado (primer bloque del UUID).
func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}

// paymentLabel traduce el método de pago para el recibo.
func paymentLabel(method string) string {
	switch method {
	case "cash":
		return "Efectivo"
	case "card":
		return "Tarjeta"
	case "bank_transfer":
		return "Transferencia"
	case "promptpay":
		return "PromptPay"
	default:
		return method
	}
}
