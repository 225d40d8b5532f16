package pinned

import (
	"strconv"

	"github.com/Cyclone1070/spyglass-pinned/internal/document"
)

// Positions of the metric links on a card. The meaning comes from the order
// the page renders them in, not from their labels.
const (
	StarsIndex = 0
	ForksIndex = 1
)

// ExtractMetric returns the count shown by the metric link at index. Missing
// links and text that is not a plain non-negative integer ("1.2k", "-3", "N/A")
// all resolve to 0.
func ExtractMetric(card document.Node, index int) int {
	metrics := card.FindAll(MetricSelector)
	if index < 0 || index >= len(metrics) {
		return 0
	}
	text, ok := metrics[index].NormalizedText()
	if !ok {
		return 0
	}
	count, err := strconv.Atoi(text)
	if err != nil || count < 0 {
		return 0
	}
	return count
}
