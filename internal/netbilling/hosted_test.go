package netbilling

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHostedPaymentURL(t *testing.T) {
	t.Parallel()

	link, err := HostedPaymentURL("", testSite, Purchase{
		Amount:      "9.95",
		Description: "Monthly access",
		ReturnURL:   "https://members.example.com/netbilling/return",
	})
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "secure.netbilling.com", u.Host)
	require.Equal(t, "/gw/native/join2.2b", u.Path)
	q := u.Query()
	require.Equal(t, "123456789012:shop", q.Get(FieldAccountAndSitetag))
	require.Equal(t, "9.95", q.Get("Ecom_Cost_Total"))
	require.Equal(t, "Monthly access", q.Get("Ecom_Receipt_Description"))
	require.Equal(t, "GET", q.Get("Ecom_Ezic_Fulfillment_ReturnMethod"))
	require.Equal(t, "https://members.example.com/netbilling/return", q.Get("Ecom_Ezic_Fulfillment_ReturnURL"))
	require.Equal(t, "30.0", q.Get("Ecom_Ezic_Membership_Period"))
}

func TestHostedPaymentURLRejectsBadAmount(t *testing.T) {
	t.Parallel()

	for _, amount := range []string{"", "  ", "ten", "1,00", "NaN", "Inf", "-Inf", "+inf", "0", "0.00", "-9.95"} {
		_, err := HostedPaymentURL("", testSite, Purchase{Amount: amount})
		require.Error(t, err, amount)
	}
}

func TestHostedPaymentURLCustomEndpointAndPeriod(t *testing.T) {
	t.Parallel()

	link, err := HostedPaymentURL("http://localhost:9000/join", testSite, Purchase{Amount: "1", MembershipPeriod: 7})
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "localhost:9000", u.Host)
	require.Equal(t, "7.0", u.Query().Get("Ecom_Ezic_Membership_Period"))
}
