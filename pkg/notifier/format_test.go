package notifier_test

import (
	"ctwatch/pkg/domain"
	"ctwatch/pkg/notifier"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatInterval(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{time.Hour, "1 hour"},
		{2 * time.Hour, "2 hours"},
		{time.Hour + time.Minute + time.Second, "1 hour, 1 minute, 1 second"},
		{90 * time.Second, "1 minute, 30 seconds"},
		{5 * time.Minute, "5 minutes"},
		{0, "0 seconds"},
		{500 * time.Millisecond, "0 seconds"},
		{45 * time.Second, "45 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, notifier.FormatInterval(tt.in))
		})
	}
}

func TestText(t *testing.T) {
	t.Run("new subdomains", func(t *testing.T) {
		txt := notifier.Text(domain.NewSubdomainsEvent("example.com", []string{"a.example.com", "b.example.com"}))
		require.Contains(t, txt, "*New subdomains detected on example.com*")
		require.Contains(t, txt, "*Total found: 2*")
		require.Contains(t, txt, "`a.example.com`\n`b.example.com`")
		require.False(t, strings.HasSuffix(txt, "\n"))
	})

	t.Run("scan error", func(t *testing.T) {
		txt := notifier.Text(domain.ScanErrorEvent("example.com", "503 `Service` Unavailable"))
		require.Contains(t, txt, "An error occurred while scanning *example.com*")
		require.Contains(t, txt, "`503 'Service' Unavailable`")
	})

	t.Run("domain list error", func(t *testing.T) {
		txt := notifier.Text(domain.ScanErrorEvent("", "database is locked"))
		require.Contains(t, txt, "Could not load the monitored domains")
		require.Contains(t, txt, "`database is locked`")
		require.NotContains(t, txt, "**")
	})

	t.Run("persist error", func(t *testing.T) {
		txt := notifier.Text(domain.PersistErrorEvent("example.com", []string{"a.example.com"}, "disk full"))
		require.Contains(t, txt, "could not be saved")
		require.Contains(t, txt, "`disk full`")
		require.Contains(t, txt, "`a.example.com`")
	})

	t.Run("cycle clean", func(t *testing.T) {
		txt := notifier.Text(domain.CycleCleanEvent([]string{"example.com", "example.org"}, time.Hour))
		require.Contains(t, txt, "*Scan Complete*")
		require.Contains(t, txt, "• *example.com*\n• *example.org*")
		require.Contains(t, txt, "No new subdomains detected this cycle.")
		require.True(t, strings.HasSuffix(txt, "*Next scan in:* 1 hour"))
	})
}

func TestSplit(t *testing.T) {
	require.Equal(t, []string{"short"}, notifier.Split("short", 100))

	text := "aaaa\nbbbb\ncccc\ndddd"
	chunks := notifier.Split(text, 10)
	require.Equal(t, []string{"aaaa\nbbbb", "cccc\ndddd"}, chunks)
	for _, c := range chunks {
		require.LessOrEqual(t, len(c), 10)
	}

	chunks = notifier.Split("0123456789abcdef\nxy", 8)
	require.Equal(t, []string{"01234567", "89abcdef", "xy"}, chunks)
}
