package domain

// MediaKind classifies a MediaReference as an image or a video.
type MediaKind string

const (
	// MediaKindImage marks a reference to an image file URL.
	MediaKindImage MediaKind = "image"
	// MediaKindVideo marks a reference to a video file or video-hosting URL.
	MediaKindVideo MediaKind = "video"
)

// MediaReference describes one media URL found in a piece of content. URL is
// the exact substring matched in the input. Thumbnail is only set when a
// canonical thumbnail could be derived from the URL (video-hosting links with
// a known identifier); it is empty otherwise.
type MediaReference struct {
	Kind      MediaKind `json:"kind"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail,omitempty"`
}

// LinkReference describes one absolute HTTP/HTTPS URL found in a piece of
// content. Domain is the host component when the URL parses strictly; it is
// left empty for URLs that matched the scan pattern but fail strict parsing.
// Such records are still reported, only the derived field is degraded.
type LinkReference struct {
	URL    string `json:"url"`
	Domain string `json:"domain,omitempty"`
}

// QuotedKind classifies a QuotedReference by the encoding of its payload.
type QuotedKind string

const (
	// QuotedKindEvent is a nostr:event1... token (fixed-length payload).
	QuotedKindEvent QuotedKind = "event"
	// QuotedKindNote is a nostr:note1... token (fixed-length payload).
	QuotedKindNote QuotedKind = "note"
	// QuotedKindNevent is a nostr:nevent1... token (variable-length payload).
	QuotedKindNevent QuotedKind = "nevent"
	// QuotedKindAddr is a nostr:naddr1... token (variable-length payload).
	QuotedKindAddr QuotedKind = "addr"
	// QuotedKindUnknown is reserved for tokens that matched the overall shape
	// but none of the known discriminators. It should never be produced for
	// well-formed input and exists to make that assumption explicit.
	QuotedKindUnknown QuotedKind = "unknown"
)

// QuotedReference describes one inline quoted-object token. ID and Raw both
// hold the complete matched token including the protocol prefix; decoding the
// payload to an underlying key is the responsibility of a downstream
// collaborator, not this package.
type QuotedReference struct {
	Kind QuotedKind `json:"kind"`
	ID   string     `json:"id"`
	Raw  string     `json:"raw"`
}

// References aggregates everything extracted from a single piece of content.
// All slices preserve the ordering guarantees documented in pkg/refs; nil and
// empty slices are equivalent and both mean "nothing found".
type References struct {
	// Media holds image and video references, images first.
	Media []MediaReference `json:"media,omitempty"`
	// Links holds every absolute HTTP/HTTPS URL in input order, including URLs
	// that also appear in Media. Consumers rendering both must de-duplicate.
	Links []LinkReference `json:"links,omitempty"`
	// Quoted holds inline quoted-object tokens in input order.
	Quoted []QuotedReference `json:"quoted,omitempty"`
	// Hashtags holds tag texts with the leading marker stripped, case
	// preserved, duplicates preserved, in input order.
	Hashtags []string `json:"hashtags,omitempty"`
	// Mentions holds raw identifier-mention tokens, undecoded, in input order.
	Mentions []string `json:"mentions,omitempty"`
}
