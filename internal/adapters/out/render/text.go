package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/printjob"
)

const issuedAtLayout = "Jan 2, 2006 3:04 PM"

// toASCII folds accents ("crème" -> "creme") and replaces anything else
// outside printable ASCII with '?'. Thermal printers only get the base
// code page.
func toASCII(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == '\n':
			b.WriteRune(' ')
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

// wrap splits text into lines of at most width characters, breaking on
// spaces and hard-splitting words longer than a line.
func wrap(text string, width int) []string {
	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// columns left-aligns left and right-aligns right on one line, truncating
// left when both do not fit.
func columns(left, right string, width int) string {
	space := width - len(left) - len(right)
	if space < 1 {
		keep := max(width-len(right)-1, 0)
		if keep < len(left) {
			left = left[:keep]
		}
		space = width - len(left) - len(right)
	}
	return left + strings.Repeat(" ", max(space, 1)) + right
}

// showsPrices reports whether a document type prints amounts. Tickets and
// labels go to the workroom and the driver, who do not need them.
func showsPrices(t printjob.DocumentType) bool {
	return t == printjob.Receipt || t == printjob.Report
}

type totalLine struct {
	label  string
	amount kernel.Money
	strong bool
}

func totals(doc document.Document) []totalLine {
	out := []totalLine{{label: "Subtotal", amount: doc.Subtotal}}
	if !doc.DeliveryFee.IsZero() {
		out = append(out, totalLine{label: "Delivery", amount: doc.DeliveryFee})
	}
	if !doc.Tax.IsZero() {
		out = append(out, totalLine{label: "Tax", amount: doc.Tax})
	}
	if !doc.Discount.IsZero() {
		out = append(out, totalLine{label: "Discount", amount: kernel.NewMoney(-doc.Discount.Cents())})
	}
	return append(out, totalLine{label: "TOTAL", amount: doc.Total, strong: true})
}
