package holdings

import "github.com/omniallc/edgar13f/client"

const (
	submissionsHost = "data.sec.gov"
	archivesHost    = "www.sec.gov"
)

// Clients holds one configured client per EDGAR host.
type Clients struct {
	Submissions *client.Client
	Archives    *client.Client
}

func NewClients(ua string, opts ...client.ClientOption) Clients {
	return Clients{
		Submissions: client.New(opts...).
			WithBaseURL("https://"+submissionsHost).
			WithUserAgent(ua).
			WithHeader("Accept-Encoding", "gzip, deflate, br").
			WithHeader("Host", submissionsHost),
		Archives: client.New(opts...).
			WithBaseURL("https://"+archivesHost).
			WithUserAgent(ua).
			WithHeader("Accept-Encoding", "gzip, deflate").
			WithHeader("Host", archivesHost),
	}
}
