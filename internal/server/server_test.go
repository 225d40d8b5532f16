package server_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Cyclone1070/spyglass-pinned/internal/server"
	"github.com/Cyclone1070/spyglass-pinned/internal/upstream"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEndToEnd runs the router against a real fetcher talking to a fake upstream.
func TestEndToEnd(t *testing.T) {
	profile, err := os.ReadFile("../pinned/testdata/profile.html")
	require.NoError(t, err)

	upstreamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/octocat":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(profile)
		case "/limited":
			w.WriteHeader(http.StatusTooManyRequests)
			io.WriteString(w, string(profile))
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, string(profile))
		}
	}))
	defer upstreamServer.Close()

	fetcher := upstream.NewCollectorFetcher(upstream.Options{BaseURL: upstreamServer.URL})
	apiServer := httptest.NewServer(server.NewRouter(zerolog.Nop(), testConfig(), fetcher))
	defer apiServer.Close()

	testCases := []struct {
		username   string
		wantStatus int
		wantBody   string
	}{
		{"octocat", http.StatusOK, `"name":"Hello-World"`},
		{"ghost", http.StatusNotFound, `{"detail":"User not found"}`},
		{"limited", http.StatusTooManyRequests, `{"detail":"Origin rate limit exceeded"}`},
		{"broken", http.StatusInternalServerError, `{"detail":"Error fetching user"}`},
	}
	for _, testCase := range testCases {
		t.Run(testCase.username, func(t *testing.T) {
			response, err := http.Get(fmt.Sprintf("%s/get/%s", apiServer.URL, testCase.username))
			require.NoError(t, err)
			defer response.Body.Close()
			body, err := io.ReadAll(response.Body)
			require.NoError(t, err)

			assert.Equal(t, testCase.wantStatus, response.StatusCode)
			assert.Contains(t, string(body), testCase.wantBody)
		})
	}
}
