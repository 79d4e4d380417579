// Package refs implements the content reference scanner: a set of pure,
// stateless operations that recognize structured references embedded in
// free-form text (media URLs, generic links, quoted-object tokens, hashtags
// and identifier mentions) and report them as typed domain records.
//
// The scanner treats its input as a flat character sequence. It never mutates
// or re-renders the text, performs no I/O, keeps no state between calls and is
// safe for concurrent use. Text with no recognizable references yields empty
// results, never an error. Decoding of the tokens it reports (e.g. bech32
// payloads) is explicitly a downstream responsibility.
package refs

import (
	"net/url"
	"regexp"
	"strings"

	"noteref/pkg/domain"
)

var (
	// imagePattern matches absolute HTTP/HTTPS URLs whose path ends in a known
	// image extension, optionally followed by a query string.
	imagePattern = regexp.MustCompile(`(?i)https?://[^\s]+\.(?:jpg|jpeg|png|gif|webp|svg)(?:\?[^\s]*)?`)

	// videoFilePattern is the same shape as imagePattern for raw video files.
	videoFilePattern = regexp.MustCompile(`(?i)https?://[^\s]+\.(?:mp4|webm|mov|avi)(?:\?[^\s]*)?`)

	// videoHostPattern matches YouTube watch-page and short-link URLs. The
	// first submatch captures the 11-character video identifier used to build
	// the canonical thumbnail URL.
	videoHostPattern = regexp.MustCompile(`https?://(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]{11})[^\s]*`)

	// linkPattern matches any absolute HTTP/HTTPS URL terminated by whitespace.
	linkPattern = regexp.MustCompile(`https?://[^\s]+`)

	// hashtagPattern matches a '#' marker followed by one or more ASCII
	// letters, digits or underscores. No upper bound on tag length is enforced
	// here; that is caller-side policy.
	hashtagPattern = regexp.MustCompile(`#([A-Za-z0-9_]+)`)

	// quotedPattern matches inline quoted-object tokens. event and note
	// payloads are fixed-length; nevent and naddr payloads are variable-length
	// with a minimum.
	quotedPattern = regexp.MustCompile(`nostr:(?:event1[0-9a-z]{58}|note1[0-9a-z]{58}|nevent1[0-9a-z]{58,}|naddr1[0-9a-z]{58,})`)

	// mentionPattern matches identifier mentions: the npub1 prefix
	// (case-insensitive) followed by exactly 58 characters of the bech32
	// alphabet. Only the shape is checked; checksum validity is not.
	mentionPattern = regexp.MustCompile(`(?i:npub1)[023456789acdefghjklmnpqrstuvwxyz]{58}`)
)

// thumbnailURL returns the canonical thumbnail location for a hosted video
// identifier.
func thumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/0.jpg"
}

// quotedDiscriminators decides the kind of a quoted-object token. Entries are
// checked in this declared order and the first matching discriminator wins,
// so classification does not depend on pattern-engine match order. The order
// only matters for malformed tokens carrying more than one discriminator,
// which cannot occur for tokens produced by quotedPattern.
var quotedDiscriminators = []struct {
	prefix string
	kind   domain.QuotedKind
}{
	{"nostr:event1", domain.QuotedKindEvent},
	{"nostr:note1", domain.QuotedKindNote},
	{"nostr:nevent1", domain.QuotedKindNevent},
	{"nostr:naddr1", domain.QuotedKindAddr},
}

// Media scans text for media references. Three pattern families are applied
// to the whole input, each in a single left-to-right pass: image file URLs,
// video file URLs and video-hosting links. The returned slice holds all image
// matches first (in input order), then video files, then hosting links; a
// single URL can match at most one family. Hosting links carry a derived
// thumbnail URL, file URLs do not.
func Media(text string) []domain.MediaReference {
	var out []domain.MediaReference

	for _, m := range imagePattern.FindAllString(text, -1) {
		out = append(out, domain.MediaReference{Kind: domain.MediaKindImage, URL: m})
	}
	for _, m := range videoFilePattern.FindAllString(text, -1) {
		out = append(out, domain.MediaReference{Kind: domain.MediaKindVideo, URL: m})
	}
	for _, m := range videoHostPattern.FindAllStringSubmatch(text, -1) {
		out = append(out, domain.MediaReference{
			Kind:      domain.MediaKindVideo,
			URL:       m[0],
			Thumbnail: thumbnailURL(m[1]),
		})
	}

	return out
}

// Links scans text for absolute HTTP/HTTPS URLs in input order. Duplicates
// are preserved and no overlap-filtering against Media is performed; a URL
// that is also an image link appears in both results. The Domain field is
// populated from strict URL parsing; when parsing fails the record is still
// returned with Domain empty so that one malformed URL cannot suppress the
// rest of the scan.
func Links(text string) []domain.LinkReference {
	var out []domain.LinkReference

	for _, m := range linkPattern.FindAllString(text, -1) {
		ref := domain.LinkReference{URL: m}
		if u, err := url.Parse(m); err == nil {
			ref.Domain = u.Host
		} // else: keep the record, only the derived field is degraded
		out = append(out, ref)
	}

	return out
}

// Quoted scans text for inline quoted-object tokens in input order. ID and
// Raw are both set to the complete matched token; no payload decoding happens
// here. Kind is derived from the quotedDiscriminators table.
func Quoted(text string) []domain.QuotedReference {
	var out []domain.QuotedReference

	for _, m := range quotedPattern.FindAllString(text, -1) {
		kind := domain.QuotedKindUnknown
		for _, d := range quotedDiscriminators {
			if strings.HasPrefix(m, d.prefix) {
				kind = d.kind

				break
			}
		}
		out = append(out, domain.QuotedReference{Kind: kind, ID: m, Raw: m})
	}

	return out
}

// Hashtags scans text for hashtag tokens and returns their texts with the
// leading marker stripped. Case is preserved, duplicates are preserved and
// order follows the position of each match in the input.
func Hashtags(text string) []string {
	var out []string

	for _, m := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}

	return out
}

// Mentions scans text for identifier-mention tokens and returns the full raw
// tokens including the prefix. Tokens are not decoded or checksum-validated;
// a shape-matching token that later fails to decode must be rejected by the
// decoding collaborator, not silently dropped here.
func Mentions(text string) []string {
	return mentionPattern.FindAllString(text, -1)
}
