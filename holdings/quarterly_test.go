package holdings

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omniallc/edgar13f/client"
	"github.com/omniallc/edgar13f/client/index"
	mocksClient "github.com/omniallc/edgar13f/internal/mocks/client"
)

const testMasterIndex = `Description:           Master Index of EDGAR Dissemination Feed
Last Data Received:    March 31, 2024
Comments:              webmaster@sec.gov
Anonymous FTP:         ftp://ftp.sec.gov/edgar/
Cloud HTTP:            https://www.sec.gov/Archives/

 
 
 
CIK|Company Name|Form Type|Date Filed|Filename
--------------------------------------------------------------------------------
1000045|OLD MARKET CAPITAL Corp|10-Q|2024-02-14|edgar/data/1000045/0000950170-24-014566.txt
1067983|BERKSHIRE HATHAWAY INC|13F-HR|2024-02-14|edgar/data/1067983/0000950123-24-002518.txt
1067983|BERKSHIRE HATHAWAY INC|13F-HR/A|2024-02-20|edgar/data/1067983/0000950123-24-002700.txt
1336528|Pershing Square Capital Management, L.P.|13F-HR|2024-02-14|edgar/data/1336528/0001172661-24-000866.txt
`

const masterIndexPath = "/Archives/edgar/full-index/2024/QTR1/master.idx"

func TestFetcher_QuarterFilings(t *testing.T) {
	fake := new(fakeEdgar).WithText(masterIndexPath, testMasterIndex)
	f := newTestFetcher(t, fake)

	qtr, err := ParseQtr("2024/QTR1")
	require.NoError(t, err)
	filings, err := f.QuarterFilings(context.Background(), qtr)
	require.NoError(t, err)

	filed := time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []QuarterFiling{
		{
			CIK:         1067983,
			CompanyName: "BERKSHIRE HATHAWAY INC",
			Accession:   "0000950123-24-002518",
			Filed:       filed,
		},
		{
			CIK:         1336528,
			CompanyName: "Pershing Square Capital Management, L.P.",
			Accession:   "0001172661-24-000866",
			Filed:       filed,
		},
	}, filings)
	assert.Equal(t, []string{"https://www.sec.gov" + masterIndexPath}, fake.URLs())
}

func TestFetcher_QuarterFilings_gzip(t *testing.T) {
	httpClient := mocksClient.NewMockHttpRequestDoer(t)
	httpClient.EXPECT().Do(mock.Anything).RunAndReturn(
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, masterIndexPath, req.URL.Path)
			recorder := httptest.NewRecorder()
			recorder.Header().Set("Content-Encoding", "gzip")
			zw := gzip.NewWriter(recorder)
			_, err := zw.Write([]byte(testMasterIndex))
			require.NoError(t, err)
			require.NoError(t, zw.Close())
			return recorder.Result(), nil
		}).Once()
	f := New(NewClients(testUA, client.WithHttpClient(httpClient)))

	qtr, err := ParseQtr("2024/QTR1")
	require.NoError(t, err)
	filings, err := f.QuarterFilings(context.Background(), qtr)
	require.NoError(t, err)
	assert.Len(t, filings, 2)
}

func TestFetcher_QuarterFilings_errors(t *testing.T) {
	qtr, err := ParseQtr("2024/QTR1")
	require.NoError(t, err)

	f := newTestFetcher(t, new(fakeEdgar))
	_, err = f.QuarterFilings(context.Background(), qtr)
	require.ErrorIs(t, err, client.ErrUnexpectedStatus)

	f = newTestFetcher(t, new(fakeEdgar).WithText(masterIndexPath,
		testMasterIndex+"1|ACME|13F-HR|2024-02-30|edgar/data/1/0000000001-24-000001.txt\n"))
	filings, err := f.QuarterFilings(context.Background(), qtr)
	require.ErrorIs(t, err, index.ErrMalformed)
	assert.Nil(t, filings)
}
