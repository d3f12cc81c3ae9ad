package render

import (
	"bytes"
	"strconv"
	"strings"

	"fulfillment/internal/core/domain/model/document"
)

// ThermalColumns is the line width of a 58mm receipt printer in font A.
const ThermalColumns = 32

// ESC/POS commands.
var (
	escInit        = []byte{0x1b, 0x40}
	escAlignLeft   = []byte{0x1b, 0x61, 0x00}
	escAlignCenter = []byte{0x1b, 0x61, 0x01}
	escBoldOn      = []byte{0x1b, 0x45, 0x01}
	escBoldOff     = []byte{0x1b, 0x45, 0x00}
	escFeed3       = []byte{0x1b, 0x64, 0x03}
	gsPartialCut   = []byte{0x1d, 0x56, 0x01}
)

// ThermalRenderer produces an ESC/POS command stream.
type ThermalRenderer struct {
	Width int
}

type escpos struct {
	buf   bytes.Buffer
	width int
}

func (e *escpos) cmd(c []byte) {
	e.buf.Write(c)
}

func (e *escpos) line(s string) {
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *escpos) bold(s string) {
	e.cmd(escBoldOn)
	e.line(s)
	e.cmd(escBoldOff)
}

func (e *escpos) wrapped(s string) {
	for _, l := range wrap(toASCII(s), e.width) {
		e.line(l)
	}
}

func (e *escpos) separator() {
	e.line(strings.Repeat("-", e.width))
}

func (r ThermalRenderer) Render(doc document.Document, _ string) ([]byte, error) {
	width := r.Width
	if width <= 0 {
		width = ThermalColumns
	}
	e := &escpos{width: width}

	e.cmd(escInit)
	e.cmd(escAlignCenter)
	e.bold(toASCII(doc.Store.Name))
	if doc.Store.Address != "" {
		e.wrapped(doc.Store.Address)
	}
	if doc.Store.Phone != "" {
		e.line(toASCII(doc.Store.Phone))
	}
	e.line("")
	e.bold(strings.ToUpper(doc.Title))
	if doc.OrderNumber != "" {
		e.line("Order " + toASCII(doc.OrderNumber))
	}
	e.line(doc.IssuedAt.Format(issuedAtLayout))

	e.cmd(escAlignLeft)
	e.separator()
	if doc.CustomerName != "" {
		e.wrapped("Customer: " + doc.CustomerName)
	}
	if doc.RecipientName != "" {
		e.wrapped("Deliver to: " + doc.RecipientName)
	}
	if doc.RecipientPhone != "" {
		e.line(toASCII(doc.RecipientPhone))
	}
	for _, l := range doc.DeliveryAddress {
		e.wrapped(l)
	}
	if doc.DeliveryDate != "" {
		e.wrapped(strings.TrimSpace("Date: " + doc.DeliveryDate + " " + doc.DeliveryTime))
	}

	if len(doc.Lines) > 0 {
		e.separator()
		prices := showsPrices(doc.Type)
		for _, l := range doc.Lines {
			item := toASCII(itemLabel(l))
			if prices {
				e.line(columns(item, l.RowTotal.String(), width))
			} else {
				e.wrapped(item)
			}
		}
		if prices {
			e.separator()
			for _, t := range totals(doc) {
				row := columns(t.label, t.amount.String(), width)
				if t.strong {
					e.bold(row)
				} else {
					e.line(row)
				}
			}
		}
	}

	if doc.CardMessage != "" {
		e.separator()
		e.line("Card:")
		e.wrapped(doc.CardMessage)
	}

	e.cmd(escFeed3)
	e.cmd(gsPartialCut)
	return e.buf.Bytes(), nil
}

func itemLabel(l document.Line) string {
	return strconv.Itoa(l.Quantity) + " x " + l.Description
}
