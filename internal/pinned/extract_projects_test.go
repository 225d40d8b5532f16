package pinned_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/Cyclone1070/spyglass-pinned/internal/pinned"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func readFixture(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile("testdata/profile.html")
	require.NoError(t, err)
	return string(raw)
}

func TestExtractProfile(t *testing.T) {
	got, err := pinned.ExtractHTML(readFixture(t))
	require.NoError(t, err)

	want := []pinned.Project{
		{Author: "octocat", Name: "Hello-World", Description: "My first repository on GitHub!", Language: "JavaScript", Stars: 2791, Forks: 2567},
		{Author: "github", Name: "linguist", Description: "Language Savant. If your repository's language is being reported incorrectly,            send us a pull request!", Language: "Ruby"},
		{Author: "octocat", Name: "Spoon-Knife", Stars: 13},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractHTML() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNoCards(t *testing.T) {
	for description, html := range map[string]string{
		"profile without pins": "<html><body><div class='js-pinned-items-reorder-container'></div></body></html>",
		"empty document":       "",
		"not html at all":      "{\"message\": \"rate limited\"}",
	} {
		t.Run(description, func(t *testing.T) {
			got, err := pinned.ExtractHTML(html)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Empty(t, got)

			body, err := json.Marshal(got)
			require.NoError(t, err)
			require.Equal(t, "[]", string(body))
		})
	}
}

func TestExtractIsAllOrNothing(t *testing.T) {
	html := `<html><body>
		<div class="js-pinned-item-list-item"><a href="/octocat/Hello-World">ok</a></div>
		<div class="js-pinned-item-list-item"><p class="pinned-item-desc">no link here</p></div>
		<div class="js-pinned-item-list-item"><a href="/octocat/Spoon-Knife">ok</a></div>
	</body></html>`

	got, err := pinned.ExtractHTML(html)
	require.Error(t, err)
	require.Nil(t, got)

	var extractionErr *pinned.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	require.Equal(t, 1, extractionErr.Card)
	require.True(t, errors.Is(err, pinned.ErrIdentity))
}

func TestExtractPreservesDocumentOrder(t *testing.T) {
	html := `<div class="js-pinned-item-list-item"><a href="/z/last">x</a></div>
		<div class="js-pinned-item-list-item"><a href="/a/first">x</a></div>
		<div class="js-pinned-item-list-item"><a href="/m/middle">x</a></div>`

	got, err := pinned.ExtractHTML(html)
	require.NoError(t, err)

	names := []string{}
	for _, project := range got {
		names = append(names, project.Name)
	}
	if diff := cmp.Diff([]string{"last", "first", "middle"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	raw := readFixture(t)

	first, err := pinned.ExtractHTML(raw)
	require.NoError(t, err)
	second, err := pinned.ExtractHTML(raw)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, string(firstJSON), string(secondJSON))
}

func TestProjectJSONFields(t *testing.T) {
	body, err := json.Marshal(pinned.Project{Author: "octocat", Name: "Hello-World"})
	require.NoError(t, err)
	require.JSONEq(t, `{"author":"octocat","name":"Hello-World","description":"","language":"","stars":0,"forks":0}`, string(body))
}
