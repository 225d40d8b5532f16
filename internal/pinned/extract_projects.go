package pinned

import "github.com/Cyclone1070/spyglass-pinned/internal/document"

// Extract builds one Project per pinned card, in document order. If any card
// cannot be identified, no projects are returned and the error is an
// *ExtractionError.
func Extract(doc document.Node) ([]Project, error) {
	cards := LocateCards(doc)
	projects := make([]Project, 0, len(cards))
	for i, card := range cards {
		author, name, err := ExtractIdentity(card)
		if err != nil {
			return nil, &ExtractionError{Card: i, Err: err}
		}
		projects = append(projects, Project{
			Author:      author,
			Name:        name,
			Description: ExtractDescription(card),
			Language:    ExtractLanguage(card),
			Stars:       ExtractMetric(card, StarsIndex),
			Forks:       ExtractMetric(card, ForksIndex),
		})
	}
	return projects, nil
}

// ExtractHTML parses raw and extracts its pinned projects.
func ExtractHTML(raw string) ([]Project, error) {
	return Extract(document.Parse(raw))
}
