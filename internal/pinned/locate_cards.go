// Package pinned extracts the pinned projects from a profile page. Extraction
// is all or nothing per document: optional fields fall back to defaults, but
// a card without a usable primary link fails the whole page.
package pinned

import "github.com/Cyclone1070/spyglass-pinned/internal/document"

// Selectors for the profile page markup.
const (
	CardSelector        = ".js-pinned-item-list-item"
	PrimaryLinkSelector = "a"
	DescriptionSelector = "p.pinned-item-desc"
	LanguageSelector    = "span[itemprop='programmingLanguage']"
	MetricSelector      = "a.pinned-item-meta"
)

// LocateCards returns every pinned card in doc in document order. A page
// without pinned items yields an empty slice.
func LocateCards(doc document.Node) []document.Node {
	return doc.FindAll(CardSelector)
}
