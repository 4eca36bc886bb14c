package fulfillment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// FormatItems Tests
// ============================================

func TestFormatItems_NoLabels(t *testing.T) {
	items := []string{"a@b.com,pw1", "c@d.com,pw2"}

	assert.Equal(t, []string{"a@b.com,pw1", "c@d.com,pw2"}, FormatItems(items, "", false))
	assert.Equal(t, []string{"<code>a@b.com,pw1</code>", "<code>c@d.com,pw2</code>"}, FormatItems(items, "", true))
}

func TestFormatItems_ZipsLabels(t *testing.T) {
	out := FormatItems([]string{"a@b.com, pw1 ,tok"}, "Email, Password, Token", false)

	require.Len(t, out, 1)
	assert.Equal(t, "Email: a@b.com\nPassword: pw1\nToken: tok", out[0])
}

func TestFormatItems_HTMLWrapsValues(t *testing.T) {
	out := FormatItems([]string{"a@b.com,pw1"}, "Email,Password", true)

	require.Len(t, out, 1)
	assert.Equal(t, "Email: <code>a@b.com</code>\nPassword: <code>pw1</code>", out[0])
}

func TestFormatItems_MissingValuesKeepLabel(t *testing.T) {
	out := FormatItems([]string{"a@b.com"}, "Email,Password,Token", false)

	require.Len(t, out, 1)
	assert.Equal(t, "Email: a@b.com\nPassword:\nToken:", out[0])
}

func TestFormatItems_IgnoresBlankLabels(t *testing.T) {
	out := FormatItems([]string{"x,y"}, " , ,", false)

	assert.Equal(t, []string{"x,y"}, out)
}

// ============================================
// renderDelivery Tests
// ============================================

func TestRenderDelivery_InlineForSmallOrders(t *testing.T) {
	payload := renderDelivery("VPN Pro", "valid 30 days", "100,000đ",
		[]string{"a@b.com,pw"}, "Email,Password", 4096, 5)

	assert.False(t, payload.asDocument)
	assert.Contains(t, payload.message, "✅ Payment confirmed!")
	assert.Contains(t, payload.message, "🧾 VPN Pro | Qty: 1")
	assert.Contains(t, payload.message, "📝 Note:\nvalid 30 days")
	assert.Contains(t, payload.message, "Email: <code>a@b.com</code>")
}

func TestRenderDelivery_DocumentAboveItemThreshold(t *testing.T) {
	items := []string{"1", "2", "3", "4", "5", "6"}
	payload := renderDelivery("VPN Pro", "", "600đ", items, "", 4096, 5)

	assert.True(t, payload.asDocument)
	assert.Equal(t, "VPN Pro_6.txt", payload.filename)
	assert.Contains(t, payload.caption, "Qty: 6")
	assert.Contains(t, payload.file, "Product: VPN Pro")
	assert.Contains(t, payload.file, strings.Repeat("=", 40))
	// Plain rendering, no HTML.
	assert.NotContains(t, payload.file, "<code>")
}

func TestRenderDelivery_DocumentWhenMessageTooLong(t *testing.T) {
	long := strings.Repeat("x", 5000)
	payload := renderDelivery("P", "", "1đ", []string{long}, "", 4096, 5)

	assert.True(t, payload.asDocument)
	assert.Contains(t, payload.file, long)
}
