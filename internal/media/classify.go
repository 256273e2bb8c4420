package media

import "strings"

// Kind selects the handler responsible for a reference.
type Kind int

const (
	// KindGeneric is the fallback for unrecognized content.
	KindGeneric Kind = iota
	// KindDocument covers PDF and other convertible documents.
	KindDocument
	// KindPlaintext covers directly decodable text.
	KindPlaintext
	// KindAudio covers audio streams and mp4 containers whose audio track is
	// transcribed in place, without the extraction queue.
	KindAudio
	// KindImage covers images described by the vision service.
	KindImage
	// KindVideo covers hosted video handled through the extraction queue.
	KindVideo
)

// String returns the handler name for logging.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindPlaintext:
		return "plaintext"
	case KindAudio:
		return "audio"
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "generic"
	}
}

// Classify maps a declared content type plus URL onto a handler Kind.
//
// Priority order matters: a video/mp4 container goes to the audio handler so
// its soundtrack is transcribed directly, while other video types and
// recognized video-hosting URLs go through the extraction queue. The content
// type is advisory; an absent or generic type with a video-hosting URL still
// classifies as video.
func Classify(contentType, url string) Kind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "application/pdf"):
		return KindDocument
	case strings.HasPrefix(ct, "text/plain"):
		return KindPlaintext
	case strings.HasPrefix(ct, "audio/"), strings.HasPrefix(ct, "video/mp4"):
		return KindAudio
	case strings.HasPrefix(ct, "image/"):
		return KindImage
	case strings.HasPrefix(ct, "video/"), IsVideoURL(url):
		return KindVideo
	default:
		return KindGeneric
	}
}
