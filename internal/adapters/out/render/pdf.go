package render

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/printjob"
)

// labelSize is a 4x6 inch shipping label.
var labelSize = fpdf.SizeType{Wd: 101.6, Ht: 152.4}

// PDFRenderer lays documents out on A4, or on a 4x6 label for LABEL documents.
type PDFRenderer struct{}

func (PDFRenderer) Render(doc document.Document, _ string) ([]byte, error) {
	pdf := newPDF(doc.Type)
	pdf.SetCreationDate(doc.IssuedAt)
	pdf.SetModificationDate(doc.IssuedAt)
	pdf.SetTitle(doc.Title+" "+doc.OrderNumber, true)
	pdf.SetAuthor(doc.Store.Name, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	content := pageWidth - left - right

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(content, 8, tr(doc.Store.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range []string{doc.Store.Address, doc.Store.Phone} {
		if l != "" {
			pdf.CellFormat(content, 5, tr(l), "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	heading := doc.Title
	if doc.OrderNumber != "" {
		heading += "  " + doc.OrderNumber
	}
	pdf.CellFormat(content, 7, tr(heading), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(content, 5, doc.IssuedAt.Format(issuedAtLayout), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 10)
	field := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(28, 5, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(content-28, 5, tr(value), "", "L", false)
	}
	field("Customer", doc.CustomerName)
	field("Deliver to", strings.TrimSpace(doc.RecipientName+"  "+doc.RecipientPhone))
	field("Address", strings.Join(doc.DeliveryAddress, "\n"))
	field("Date", strings.TrimSpace(doc.DeliveryDate+" "+doc.DeliveryTime))

	if len(doc.Lines) > 0 && doc.Type != printjob.Label {
		pdf.Ln(3)
		prices := showsPrices(doc.Type)
		qtyW, amountW := 14.0, 30.0
		descW := content - qtyW
		if prices {
			descW -= 2 * amountW
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(qtyW, 6, "Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(descW, 6, "Item", "1", 0, "L", true, 0, "")
		if prices {
			pdf.CellFormat(amountW, 6, "Unit", "1", 0, "R", true, 0, "")
			pdf.CellFormat(amountW, 6, "Total", "1", 0, "R", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		for _, l := range doc.Lines {
			pdf.CellFormat(qtyW, 6, strconv.Itoa(l.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(descW, 6, tr(l.Description), "1", 0, "L", false, 0, "")
			if prices {
				pdf.CellFormat(amountW, 6, l.UnitPrice.String(), "1", 0, "R", false, 0, "")
				pdf.CellFormat(amountW, 6, l.RowTotal.String(), "1", 0, "R", false, 0, "")
			}
			pdf.Ln(-1)
		}

		if prices {
			pdf.Ln(2)
			for _, t := range totals(doc) {
				style := ""
				if t.strong {
					style = "B"
				}
				pdf.SetFont("Helvetica", style, 10)
				pdf.CellFormat(content-amountW, 6, t.label, "", 0, "R", false, 0, "")
				pdf.CellFormat(amountW, 6, t.amount.String(), "", 1, "R", false, 0, "")
			}
		}
	}

	if doc.CardMessage != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(content, 5, "Card message", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(content, 6, tr(doc.CardMessage), "1", "C", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newPDF(t printjob.DocumentType) *fpdf.Fpdf {
	if t == printjob.Label {
		pdf := fpdf.NewCustom(&fpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "mm",
			Size:           labelSize,
		})
		pdf.SetMargins(6, 6, 6)
		pdf.SetAutoPageBreak(true, 6)
		return pdf
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	return pdf
}
