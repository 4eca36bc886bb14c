package email

import (
	"fmt"
	"strings"
)

// AlertRow is one key/value line in an alert email.
type AlertRow struct {
	Label string
	Value string
}

// BuildAlertBody builds the HTML body for an operator alert email
func BuildAlertBody(title, summary string, rows []AlertRow) string {
	var rowsHTML strings.Builder
	for _, row := range rows {
		rowsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 10px; border-bottom: 1px solid #eee; color: #666;">%s</td>
				<td style="padding: 10px; border-bottom: 1px solid #eee; font-family: monospace;">%s</td>
			</tr>`,
			row.Label,
			row.Value,
		))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #c0392b; padding: 24px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 20px;">%s</h1>
	</div>

	<div style="background: #fff; padding: 24px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">%s</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tbody>
				%s
			</tbody>
		</table>

		<hr style="border: none; border-top: 1px solid #eee; margin: 24px 0;">

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			Automated alert from the operator console. Check the console for full details.
		</p>
	</div>
</body>
</html>`, title, summary, rowsHTML.String())
}

// FormatIDs renders an id list for an alert row.
func FormatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
