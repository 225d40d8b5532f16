package main

import (
	"os"

	"github.com/Cyclone1070/spyglass-pinned/jobs"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

func newGetCmd() *cobra.Command {
	var (
		format      string
		concurrency int
		file        string
	)

	cmd := &cobra.Command{
		Use:   "get [username...]",
		Short: "Print the pinned projects of one or more users",
		Long: `get fetches each user's profile and prints their pinned projects keyed
by username. Users that cannot be fetched are reported inline and do not
stop the others.`,
		Example: `  pinned get octocat
  pinned get octocat torvalds -o yaml
  pinned get --file users.txt -c 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			usernames := args
			if file != "" {
				reader, err := os.Open(file)
				if err != nil {
					return errors.Errorf("opening usernames file: %w", err)
				}
				defer reader.Close()
				fromFile, err := jobs.ReadUsernames(reader)
				if err != nil {
					return err
				}
				usernames = append(usernames, fromFile...)
			}
			if len(usernames) == 0 {
				return errors.New("no usernames given")
			}

			fetcher, release, err := newFetcher(ctx, cfg.Upstream)
			if err != nil {
				return err
			}
			defer release()

			return jobs.ExportProjects(ctx, cmd.OutOrStdout(), fetcher, usernames, format, concurrency)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", jobs.FormatJSON, "output format, json or yaml")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "number of profiles fetched at once")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read usernames from a file, one per line")
	return cmd
}
