package subtitles

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	timingLine = regexp.MustCompile(`-->`)
	cueTag     = regexp.MustCompile(`<[^>]+>`)
)

// ParseVTT extracts plain text from a WebVTT document.
func ParseVTT(content string) string {
	return parse(content, true)
}

// ParseSRT extracts plain text from a SubRip document.
func ParseSRT(content string) string {
	return parse(content, false)
}

// Parse picks a parser from the format tag yt-dlp reports ("vtt", "srt").
// Unknown formats fall back to the VTT parser, which handles both layouts
// well enough to salvage text.
func Parse(content, format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "srt":
		return ParseSRT(content)
	default:
		return ParseVTT(content)
	}
}

func parse(content string, vtt bool) string {
	var lines []string
	var last string
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if timingLine.MatchString(line) {
			continue
		}
		if vtt && isVTTHeader(line) {
			continue
		}
		if !vtt && isCueIndex(line) {
			continue
		}
		line = cueTag.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" || line == last {
			continue
		}
		lines = append(lines, line)
		last = line
	}
	return strings.Join(lines, " ")
}

func isVTTHeader(line string) bool {
	switch {
	case strings.HasPrefix(line, "WEBVTT"),
		strings.HasPrefix(line, "Kind:"),
		strings.HasPrefix(line, "Language:"),
		strings.HasPrefix(line, "NOTE"),
		strings.HasPrefix(line, "STYLE"):
		return true
	default:
		return false
	}
}

func isCueIndex(line string) bool {
	_, err := strconv.Atoi(line)
	return err == nil
}
