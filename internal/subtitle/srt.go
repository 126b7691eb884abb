package subtitle

import (
	"fmt"
	"strings"
	"time"
)

// Segment is a transcribed span of audio before SRT serialization.
type Segment struct {
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// FormatSRT serializes segments as SRT text with 1-based indices.
func FormatSRT(segments []Segment) string {
	var sb strings.Builder
	index := 1

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		sb.WriteString(fmt.Sprintf("%d\n", index))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(seg.StartTime),
			formatSRTTime(seg.EndTime)))
		sb.WriteString(text)
		sb.WriteString("\n\n")
		index++
	}

	return sb.String()
}

func formatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
