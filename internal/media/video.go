package media

import (
	"net/url"
	"strings"
)

var videoHosts = map[string]struct{}{
	"youtube.com":      {},
	"youtu.be":         {},
	"vimeo.com":        {},
	"player.vimeo.com": {},
}

func normalizedHost(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	return host
}

// IsVideoURL reports whether a URL points at a recognized video host.
func IsVideoURL(raw string) bool {
	host := normalizedHost(raw)
	if host == "" {
		return false
	}
	_, ok := videoHosts[host]
	return ok
}

// VideoID derives the stable identifier used as the durable cache key for a
// hosted video. Returns false when the URL is not a recognized video URL or
// carries no extractable identifier.
func VideoID(raw string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	host := normalizedHost(raw)
	switch host {
	case "youtube.com":
		if id := parsed.Query().Get("v"); id != "" {
			return id, true
		}
		// Shorts, embeds, and live links carry the ID as the last path segment.
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
			if strings.HasPrefix(parsed.Path, prefix) {
				if id := pathTail(parsed.Path); id != "" {
					return id, true
				}
			}
		}
		return "", false
	case "youtu.be", "vimeo.com", "player.vimeo.com":
		if id := pathTail(parsed.Path); id != "" {
			return id, true
		}
		return "", false
	default:
		return "", false
	}
}

// SourceForVideoURL picks the category tag for a hosted video URL.
func SourceForVideoURL(raw string) Source {
	switch normalizedHost(raw) {
	case "youtube.com", "youtu.be":
		return SourceYouTube
	default:
		return SourceVideo
	}
}

func pathTail(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	return segments[len(segments)-1]
}
