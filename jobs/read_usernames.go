package jobs

import (
	"bufio"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ReadUsernames reads one username per line. Blank lines and lines starting
// with # are skipped.
func ReadUsernames(reader io.Reader) ([]string, error) {
	var usernames []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		usernames = append(usernames, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading usernames: %w", err)
	}
	return usernames, nil
}
