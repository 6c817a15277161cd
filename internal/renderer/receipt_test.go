package renderer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReceiptPageEscapesFields(t *testing.T) {
	t.Parallel()

	html, err := String(context.Background(), ReceiptPage(Receipt{
		TransactionID: "114000000001",
		StatusCode:    "1",
		Amount:        "9.95",
		Description:   `<script>alert("x")</script>`,
		SiteTag:       "shop",
	}))
	require.NoError(t, err)
	require.Contains(t, html, "<h1>Payment received</h1>")
	require.Contains(t, html, `<dd data-field="transaction">114000000001</dd>`)
	require.NotContains(t, html, "<script>")
	require.True(t, strings.Contains(html, "&lt;script&gt;"))
}

func TestReceiptPagePendingStatus(t *testing.T) {
	t.Parallel()

	html, err := String(context.Background(), ReceiptPage(Receipt{TransactionID: "1", StatusCode: "0"}))
	require.NoError(t, err)
	require.Contains(t, html, "Payment pending")
	require.NotContains(t, html, `data-field="amount"`)
}
