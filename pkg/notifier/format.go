package notifier

import (
	"ctwatch/pkg/domain"
	"fmt"
	"strings"
	"time"
)

// FormatInterval renders d as "1 hour, 5 minutes, 3 seconds", omitting zero parts.
// Durations below one second render as "0 seconds".
func FormatInterval(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	plural := func(n int64, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}

		return fmt.Sprintf("%d %ss", n, unit)
	}

	var parts []string
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, plural(secs, "second"))
	}

	return strings.Join(parts, ", ")
}

// Text renders event as a Markdown message understood by both Telegram (legacy
// Markdown) and Slack (mrkdwn): *bold* and `code` only.
func Text(event domain.Event) string {
	var b strings.Builder

	switch event.Kind {
	case domain.EventNewSubdomains:
		fmt.Fprintf(&b, "🚨 *New subdomains detected on %s*\n\n", event.Domain)
		fmt.Fprintf(&b, "📊 *Total found: %d*\n\n", len(event.Hostnames))
		writeHostnames(&b, event.Hostnames)
	case domain.EventScanError:
		if event.Domain == "" {
			fmt.Fprintf(&b, "⚠️ Could not load the monitored domains:\n\n`%s`", code(event.Message))

			break
		}
		fmt.Fprintf(&b, "⚠️ An error occurred while scanning *%s*:\n\n`%s`", event.Domain, code(event.Message))
	case domain.EventPersistError:
		fmt.Fprintf(&b, "❗ *New subdomains on %s could not be saved*\n\n", event.Domain)
		fmt.Fprintf(&b, "They will be reported again on the next cycle.\n\n`%s`\n\n", code(event.Message))
		writeHostnames(&b, event.Hostnames)
	case domain.EventCycleClean:
		b.WriteString("✅ *Scan Complete*\n\n")
		b.WriteString("🔍 Checked all monitored websites:\n")
		for _, d := range event.Domains {
			fmt.Fprintf(&b, "• *%s*\n", d)
		}
		b.WriteString("\n✨ No new subdomains detected this cycle.\n")
		b.WriteString("💤 All quiet on the subdomain front! 🎯\n\n")
		fmt.Fprintf(&b, "⏰ *Next scan in:* %s", FormatInterval(event.NextScanIn))
	default:
		fmt.Fprintf(&b, "%s %s %s", event.Kind, event.Domain, event.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeHostnames(b *strings.Builder, hostnames []string) {
	for _, h := range hostnames {
		fmt.Fprintf(b, "`%s`\n", h)
	}
}

// code makes s safe to embed in an inline code span.
func code(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}

// Split breaks text into chunks of at most limit bytes, cutting only at line
// boundaries. A single line longer than limit is cut at the byte limit.
func Split(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	flush := func() {
		if chunk := strings.Trim(cur.String(), "\n"); chunk != "" {
			chunks = append(chunks, chunk)
		}
		cur.Reset()
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			flush()
			chunks = append(chunks, line[:limit])
			line = line[limit:]
		}
		if cur.Len()+len(line) > limit {
			flush()
		}
		cur.WriteString(line)
	}
	flush()

	return chunks
}
