// Package jobs holds batch tasks run from the command line.
package jobs

import (
	"context"
	"encoding/json"
	"io"
	"slices"
	"sync"

	"github.com/Cyclone1070/spyglass-pinned/internal/pinned"
	"github.com/Cyclone1070/spyglass-pinned/internal/upstream"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by ExportProjects.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.Base("unknown output format")

// Failure takes the place of a user's projects when they could not be fetched or parsed.
type Failure struct {
	Error string `json:"error" yaml:"error"`
}

// ExportProjects fetches the pinned projects of every user, at most
// concurrency at a time, and writes them to writer keyed by username. A user
// that fails is recorded as a Failure and does not stop the batch.
func ExportProjects(ctx context.Context, writer io.Writer, fetcher upstream.Fetcher, usernames []string, format string, concurrency int) error {
	if format != FormatJSON && format != FormatYAML {
		return errors.WithDetails(ErrUnknownFormat, "format", format)
	}

	var mu sync.Mutex
	results := make(map[string]any, len(usernames))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(concurrency, 1))
	for _, username := range slices.Compact(slices.Sorted(slices.Values(usernames))) {
		group.Go(func() error {
			result := exportUser(groupCtx, fetcher, username)
			mu.Lock()
			results[username] = result
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	return encode(writer, format, results)
}

func exportUser(ctx context.Context, fetcher upstream.Fetcher, username string) any {
	logger := zerolog.Ctx(ctx).With().Str("username", username).Logger()

	html, err := fetcher.Fetch(logger.WithContext(ctx), username)
	if err != nil {
		logger.Warn().Err(err).Msg("fetching profile")
		return Failure{Error: err.Error()}
	}
	projects, err := pinned.ExtractHTML(html)
	if err != nil {
		logger.Warn().Err(err).Msg("parsing profile")
		return Failure{Error: err.Error()}
	}
	logger.Info().Int("projects", len(projects)).Msg("exported")
	return projects
}

func encode(writer io.Writer, format string, results map[string]any) error {
	if format == FormatYAML {
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(results); err != nil {
			return errors.Errorf("encoding yaml: %w", err)
		}
		return errors.WithStack(encoder.Close())
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return errors.Errorf("encoding json: %w", err)
	}
	return nil
}
