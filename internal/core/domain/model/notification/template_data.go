package notification

// TemplateData holds the values available to message templates.
// Keys of Fields are the names used inside templates, e.g. {{orderNumber}}.
type TemplateData struct {
	CustomerFirstName  string
	CustomerLastName   string
	CustomerEmail      string
	CustomerPhone      string
	RecipientName      string
	RecipientFirstName string
	RecipientPhone     string
	DeliveryAddress    string
	OrderNumber        string
	OrderTotal         string
	DeliveryDate       string
	DeliveryTime       string
	StoreName          string
	StorePhone         string
	IsPickup           bool
	NewStatus          string
}

// Fields returns the template context.
func (d TemplateData) Fields() map[string]any {
	return map[string]any{
		"customerFirstName":  d.CustomerFirstName,
		"customerLastName":   d.CustomerLastName,
		"customerEmail":      d.CustomerEmail,
		"customerPhone":      d.CustomerPhone,
		"recipientName":      d.RecipientName,
		"recipientFirstName": d.RecipientFirstName,
		"recipientPhone":     d.RecipientPhone,
		"deliveryAddress":    d.DeliveryAddress,
		"orderNumber":        d.OrderNumber,
		"orderTotal":         d.OrderTotal,
		"deliveryDate":       d.DeliveryDate,
		"deliveryTime":       d.DeliveryTime,
		"storeName":          d.StoreName,
		"storePhone":         d.StorePhone,
		"isPickup":           d.IsPickup,
		"newStatus":          d.NewStatus,
	}
}
