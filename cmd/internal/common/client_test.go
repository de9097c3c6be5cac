package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omniallc/edgar13f/client"
	mocksClient "github.com/omniallc/edgar13f/internal/mocks/client"
)

func TestNewClients(t *testing.T) {
	t.Setenv("EDGAR_UA", "Acme admin@acme.com")
	t.Setenv("EDGAR_RATE_LIMIT", "0")

	clients, err := NewClients()
	require.NoError(t, err)
	require.NotNil(t, clients.Submissions)
	require.NotNil(t, clients.Archives)

	for _, c := range []*client.Client{clients.Submissions, clients.Archives} {
		assert.Equal(t, "Acme admin@acme.com", c.Headers().Get("User-Agent"))
	}
	assert.Equal(t, "https://data.sec.gov", clients.Submissions.BaseURL())
	assert.Equal(t, "https://www.sec.gov", clients.Archives.BaseURL())
}

func TestNewClients_errors(t *testing.T) {
	tests := []struct {
		name      string
		ua        string
		rateLimit string
	}{
		{
			name:      "without EDGAR_UA",
			rateLimit: "0",
		},
		{
			name:      "EDGAR_RATE_LIMIT not a number",
			ua:        "Acme admin@acme.com",
			rateLimit: "fast",
		},
		{
			name:      "negative EDGAR_RATE_LIMIT",
			ua:        "Acme admin@acme.com",
			rateLimit: "-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDGAR_UA", tt.ua)
			t.Setenv("EDGAR_RATE_LIMIT", tt.rateLimit)
			_, err := NewClients()
			require.Error(t, err)
		})
	}
}

func TestNewFetcher_rateLimit(t *testing.T) {
	t.Setenv("EDGAR_UA", "Acme admin@acme.com")
	t.Setenv("EDGAR_RATE_LIMIT", "1")

	httpClient := mocksClient.NewMockHttpRequestDoer(t)
	httpClient.EXPECT().Do(mock.Anything).RunAndReturn(
		func(req *http.Request) (*http.Response, error) {
			recorder := httptest.NewRecorder()
			_, _ = recorder.WriteString(`{"cik": "42", "filings": {"recent": {"accessionNumber": [], "form": [], "reportDate": []}}}`)
			return recorder.Result(), nil
		}).Once()

	fetcher, err := NewFetcher(client.WithHttpClient(httpClient))
	require.NoError(t, err)

	_, err = fetcher.FilingIndex(context.Background(), 42)
	require.NoError(t, err)

	// The burst is spent, next token comes in a second.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = fetcher.FilingIndex(ctx, 42)
	require.ErrorContains(t, err, "rate limit")
}
