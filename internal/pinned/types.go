package pinned

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Project is one pinned item as shown on a profile page.
type Project struct {
	// Author is the owner or organization handle, the first segment of the card's primary link.
	Author string `json:"author" yaml:"author"`
	// Name is the project identifier, the second segment of the same link.
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Language    string `json:"language" yaml:"language"`
	// Stars and Forks fall back to 0 when their metric element is missing or unreadable.
	Stars int `json:"stars" yaml:"stars"`
	Forks int `json:"forks" yaml:"forks"`
}

// ErrIdentity is returned when a card lacks a primary link that decomposes
// into an author and a name.
var ErrIdentity = errors.Base("card has no well-formed primary link")

// ExtractionError aborts extraction of a whole document. Card is the
// zero-based position of the card that failed.
type ExtractionError struct {
	Card int
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting pinned card %d: %s", e.Card, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
