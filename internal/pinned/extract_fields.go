package pinned

import (
	"strings"

	"github.com/Cyclone1070/spyglass-pinned/internal/document"
	"gitlab.com/tozd/go/errors"
)

// ExtractIdentity reads author and name from the href of the card's first
// anchor, e.g. "/octocat/Hello-World". Unlike every other field there is no
// fallback: a card that cannot be identified returns an error wrapping ErrIdentity.
func ExtractIdentity(card document.Node) (author string, name string, err error) {
	link, ok := card.FindFirst(PrimaryLinkSelector)
	if !ok {
		return "", "", errors.Errorf("%w: no anchor", ErrIdentity)
	}
	href, ok := link.Attr("href")
	if !ok {
		return "", "", errors.Errorf("%w: anchor has no href", ErrIdentity)
	}
	segments := strings.Split(href, "/")
	if len(segments) < 3 || segments[1] == "" || segments[2] == "" {
		return "", "", errors.Errorf("%w: malformed href %q", ErrIdentity, href)
	}
	return segments[1], segments[2], nil
}

// ExtractDescription returns the card's description paragraph with newlines
// removed and surrounding whitespace trimmed, or "" when there is none.
func ExtractDescription(card document.Node) string {
	desc, ok := card.FindFirst(DescriptionSelector)
	if !ok {
		return ""
	}
	text, _ := desc.NormalizedText()
	return text
}

// ExtractLanguage returns the programming language label verbatim, or "".
func ExtractLanguage(card document.Node) string {
	lang, ok := card.FindFirst(LanguageSelector)
	if !ok {
		return ""
	}
	return lang.Text()
}
