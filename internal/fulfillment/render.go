package fulfillment

import (
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
	"unicode/utf16"
)

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// renderFormDataTable builds the HTML table body for the organization
// notification email (spec.md §4.10).
func renderFormDataTable(formData map[string]any, priority string) string {
	keys := make([]string, 0, len(formData))
	for k := range formData {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<table>")
	for _, k := range keys {
		b.WriteString("<tr><td>")
		b.WriteString(html.EscapeString(k))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(fmt.Sprintf("%v", formData[k])))
		b.WriteString("</td></tr>")
	}
	b.WriteString("</table>")
	b.WriteString(fmt.Sprintf("<p>Priority: %s</p>", strings.ToUpper(priority)))
	return b.String()
}

// priorityEmoji maps priority to the glyph prefixing the SMS body
// (spec.md §4.10).
func priorityEmoji(priority string) string {
	switch priority {
	case "high":
		return "\U0001F6A8" // 🚨
	case "low":
		return "\U0001F4CB" // 📋
	default:
		return "\U0001F4DD" // 📝
	}
}

func smsBody(formID string, formData map[string]any, priority string) string {
	firstName, _ := formData["first_name"].(string)
	lastName, _ := formData["last_name"].(string)
	email, _ := formData["email"].(string)

	msg := fmt.Sprintf("%s New %s submission. Name: %s %s, Email: %s",
		priorityEmoji(priority), formID, firstName, lastName, email)
	return truncateUTF16(msg, 160)
}

// truncateUTF16 caps a string at n UTF-16 code units, the unit SMS bodies
// are measured in (spec.md §4.10, "truncated to 160 code units").
func truncateUTF16(s string, n int) string {
	units := utf16.Encode([]rune(s))
	if len(units) <= n {
		return s
	}
	return string(utf16.Decode(units[:n]))
}

func marshalArchive(sub Submission) ([]byte, error) {
	return json.Marshal(map[string]any{
		"submission_id": sub.SubmissionID,
		"tenant_id":      sub.TenantID,
		"form_id":        sub.FormID,
		"form_data":      sub.FormData,
		"priority":       sub.Priority,
		"archived_at":    nowRFC3339(),
	})
}
