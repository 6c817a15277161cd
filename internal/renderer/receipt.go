package renderer

import "strings"

// Receipt is the data shown after a verified hosted payment return.
type Receipt struct {
	TransactionID string
	StatusCode    string
	Amount        string
	Description   string
	SiteTag       string
}

// Approved reports whether the gateway status code marks the payment as approved.
func (r Receipt) Approved() bool {
	switch strings.TrimSpace(r.StatusCode) {
	case "1", "T":
		return true
	default:
		return false
	}
}

// Heading is the page title for the receipt.
func (r Receipt) Heading() string {
	if r.Approved() {
		return "Payment received"
	}
	return "Payment pending"
}
