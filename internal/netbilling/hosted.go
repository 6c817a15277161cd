package netbilling

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// DefaultHostedPaymentURL is the hosted payment page (join form) endpoint.
const DefaultHostedPaymentURL = "https://secure.netbilling.com/gw/native/join2.2b"

// DefaultMembershipPeriod is the membership length, in days, offered by the buy link.
const DefaultMembershipPeriod = 30.0

// Purchase describes what the hosted payment page should charge for.
type Purchase struct {
	Amount           string
	Description      string
	ReturnURL        string
	MembershipPeriod float64
}

// HostedPaymentURL builds the GET link that sends a customer to the hosted
// payment page for site. The page returns to ReturnURL by GET.
func HostedPaymentURL(endpoint string, site SiteConfig, p Purchase) (string, error) {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultHostedPaymentURL
	}
	base, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse hosted payment endpoint: %w", err)
	}
	amount := strings.TrimSpace(p.Amount)
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return "", fmt.Errorf("invalid amount %q", p.Amount)
	}
	period := p.MembershipPeriod
	if period <= 0 {
		period = DefaultMembershipPeriod
	}

	params := NewValues()
	params.SetString(FieldAccountAndSitetag, site.AccountAndSitetag())
	params.SetString("Ecom_Cost_Total", amount)
	params.SetString("Ecom_Receipt_Description", p.Description)
	params.SetString("Ecom_Ezic_Fulfillment_ReturnMethod", "GET")
	params.SetString("Ecom_Ezic_Fulfillment_ReturnURL", p.ReturnURL)
	params.SetString("Ecom_Ezic_Membership_Period", strconv.FormatFloat(period, 'f', 1, 64))

	base.RawQuery = EncodeForm(params)
	return base.String(), nil
}
