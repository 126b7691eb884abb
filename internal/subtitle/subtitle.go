package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Cue is a single subtitle entry as it appears in an SRT document.
type Cue struct {
	Index     int
	Timestamp string // "HH:MM:SS,mmm --> HH:MM:SS,mmm"
	Text      string
}

// ErrMalformed reports a subtitle block that does not follow the
// index / timestamp / text layout.
var ErrMalformed = errors.New("malformed subtitle block")

// Parse splits SRT text into cues. Blocks are separated by blank
// lines; each block needs an index line, a timestamp line and at
// least one text line. Parsing keeps no state between calls.
func Parse(text string) ([]Cue, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")

	if strings.TrimSpace(text) == "" {
		return []Cue{}, nil
	}

	var cues []Cue
	for i, block := range splitBlocks(text) {
		cue, err := parseBlock(block)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		cues = append(cues, cue)
	}

	return cues, nil
}

func splitBlocks(text string) [][]string {
	var blocks [][]string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

func parseBlock(lines []string) (Cue, error) {
	if len(lines) < 3 {
		return Cue{}, fmt.Errorf(
			"%w: %d lines, need index, timestamp and text",
			ErrMalformed,
			len(lines),
		)
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || index < 1 {
		return Cue{}, fmt.Errorf(
			"%w: invalid index %q",
			ErrMalformed,
			lines[0],
		)
	}

	timestamp := strings.TrimSpace(lines[1])
	if !strings.Contains(timestamp, "-->") {
		return Cue{}, fmt.Errorf(
			"%w: invalid timestamp %q",
			ErrMalformed,
			lines[1],
		)
	}

	return Cue{
		Index:     index,
		Timestamp: timestamp,
		Text:      strings.Join(lines[2:], "\n"),
	}, nil
}

// PlainText strips SRT structure and returns the narrative text.
// Index lines (pure digits) and timestamp lines are dropped;
// consecutive text lines become one paragraph, paragraphs are
// separated by a blank line. Empty input yields "".
func PlainText(srtText string) string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(srtText))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			flush()
		case isDigits(line) || strings.Contains(line, "-->"):
			// cue index or timing line
		default:
			current = append(current, line)
		}
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
