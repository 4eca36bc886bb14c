package fulfillment

import (
	"fmt"
	"strings"
)

// FormatItems renders delivered item contents through a product's field
// labels. formatData is a comma-separated label list; each item's own
// comma-delimited fields are zipped against it positionally. Without
// labels items pass through raw (wrapped in <code> for HTML output).
func FormatItems(items []string, formatData string, html bool) []string {
	var labels []string
	for _, label := range strings.Split(formatData, ",") {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}

	out := make([]string, len(items))
	if len(labels) == 0 {
		for i, item := range items {
			if html {
				out[i] = fmt.Sprintf("<code>%s</code>", item)
			} else {
				out[i] = item
			}
		}
		return out
	}

	for i, item := range items {
		values := strings.Split(item, ",")
		lines := make([]string, len(labels))
		for j, label := range labels {
			value := ""
			if j < len(values) {
				value = strings.TrimSpace(values[j])
			}
			switch {
			case value == "":
				lines[j] = label + ":"
			case html:
				lines[j] = fmt.Sprintf("%s: <code>%s</code>", label, value)
			default:
				lines[j] = fmt.Sprintf("%s: %s", label, value)
			}
		}
		out[i] = strings.Join(lines, "\n")
	}
	return out
}

// delivery is a rendered payload ready for the transport.
type delivery struct {
	// asDocument switches from an inline message to a file attachment.
	asDocument bool
	message    string
	caption    string
	filename   string
	file       string
}

// renderDelivery builds the buyer-facing payload and decides between
// inline and attachment delivery. Attachment wins when the item count
// exceeds the threshold or the message would brush the transport limit.
func renderDelivery(productName, description, totalText string, items []string, formatData string, maxMessageLength, attachmentThreshold int) delivery {
	caption := fmt.Sprintf("✅ Payment confirmed!\n\n🧾 %s | Qty: %d\n💰 Total: %s", productName, len(items), totalText)

	descriptionBlock := ""
	if cleaned := strings.TrimSpace(description); cleaned != "" {
		descriptionBlock = fmt.Sprintf("📝 Note:\n%s\n\n", cleaned)
	}

	htmlItems := strings.Join(FormatItems(items, formatData, true), "\n\n")
	message := fmt.Sprintf("%s\n\n%s🔐 Account:\n%s", caption, descriptionBlock, htmlItems)
	if len(message) > maxMessageLength {
		message = message[:maxMessageLength]
	}

	if len(items) <= attachmentThreshold && len(message) < maxMessageLength-50 {
		return delivery{message: message}
	}

	header := []string{
		fmt.Sprintf("Product: %s", productName),
		fmt.Sprintf("Qty: %d", len(items)),
		fmt.Sprintf("Total: %s", totalText),
	}
	if cleaned := strings.TrimSpace(description); cleaned != "" {
		header = append(header, fmt.Sprintf("Description: %s", cleaned))
	}
	plainItems := FormatItems(items, formatData, false)
	file := fmt.Sprintf("%s\n%s\n\n%s", strings.Join(header, "\n"), strings.Repeat("=", 40), strings.Join(plainItems, "\n\n"))

	return delivery{
		asDocument: true,
		caption:    caption,
		filename:   fmt.Sprintf("%s_%d.txt", productName, len(items)),
		file:       file,
	}
}
