package kernel

import "strings"

// Address is a postal address attached to a customer, recipient or order.
// Every field is optional; an address with no populated field is considered empty.
type Address struct {
	Line1      string
	Line2      string
	City       string
	Province   string
	PostalCode string
	Country    string
}

// IsEmpty reports whether no field of the address is populated.
func (a Address) IsEmpty() bool {
	return strings.TrimSpace(a.Line1+a.Line2+a.City+a.Province+a.PostalCode+a.Country) == ""
}

// String joins the populated parts into a single line:
// "12 Rose St, Apt 4, Springfield, IL 62704".
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line1, a.Line2, a.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	region := strings.TrimSpace(strings.TrimSpace(a.Province) + " " + strings.TrimSpace(a.PostalCode))
	if region != "" {
		parts = append(parts, region)
	}

	return strings.Join(parts, ", ")
}

// Lines returns the address split for printing on narrow media.
func (a Address) Lines() []string {
	var lines []string
	for _, p := range []string{a.Line1, a.Line2} {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}

	city := strings.TrimSpace(a.City)
	region := strings.TrimSpace(strings.TrimSpace(a.Province) + " " + strings.TrimSpace(a.PostalCode))
	switch {
	case city != "" && region != "":
		lines = append(lines, city+", "+region)
	case city != "":
		lines = append(lines, city)
	case region != "":
		lines = append(lines, region)
	}

	return lines
}

// FullName joins first and last name, skipping empty parts.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
