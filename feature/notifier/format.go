package notifier

import (
	"fmt"
	"strings"

	"duplicate-monitor/feature/alerts"
)

// maxPreviewLength caps the message text shown in a notification.
const maxPreviewLength = 200

// markdownEscaper escapes every character MarkdownV2 treats as syntax.
var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]",
	"(", "\\(", ")", "\\)", "~", "\\~", "`", "\\`",
	">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}",
	".", "\\.", "!", "\\!",
)

// EscapeMarkdown makes arbitrary text safe for MarkdownV2 parse mode.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// FormatAlert renders the admin notification for a duplicate alert. The
// message text is capped at maxPreviewLength characters, ellipsis included,
// cut on a rune boundary so the payload stays valid UTF-8.
func FormatAlert(a *alerts.Alert) string {
	preview := a.MessageText
	if runes := []rune(preview); len(runes) > maxPreviewLength {
		preview = string(runes[:maxPreviewLength-3]) + "..."
	}
	var b strings.Builder
	b.WriteString("*Duplicate message detected*\n\n")
	fmt.Fprintf(&b, "Alert: \\#%d\n", a.ID)
	fmt.Fprintf(&b, "Chat: `%d`\n", a.ChatID)
	fmt.Fprintf(&b, "Message: `%d`\n", a.MessageID)
	b.WriteString("Text: ")
	b.WriteString(EscapeMarkdown(preview))
	return b.String()
}
