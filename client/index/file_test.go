package index

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const masterHeader = `Description:           Master Index of EDGAR Dissemination Feed
Last Data Received:    March 31, 2024
Comments:              webmaster@sec.gov
Anonymous FTP:         ftp://ftp.sec.gov/edgar/
Cloud HTTP:            https://www.sec.gov/Archives/

 
 
 
CIK|Company Name|Form Type|Date Filed|Filename
--------------------------------------------------------------------------------
`

const masterRows = `1000045|OLD MARKET CAPITAL Corp|10-Q|2024-02-14|edgar/data/1000045/0000950170-24-014566.txt
1067983|BERKSHIRE HATHAWAY INC|13F-HR|2024-02-14|edgar/data/1067983/0000950123-24-002518.txt
1067983|BERKSHIRE HATHAWAY INC|SC 13G/A|2024-02-14|edgar/data/1067983/0000950123-24-002520.txt
1336528|"Pershing Square" Capital Management, L.P.|13F-HR|2024-02-14|edgar/data/1336528/0001172661-24-000866.txt
`

func TestReader_ReadHeader(t *testing.T) {
	wantHeader := map[string]string{
		"Description":        "Master Index of EDGAR Dissemination Feed",
		"Last Data Received": "March 31, 2024",
		"Comments":           "webmaster@sec.gov",
		"Anonymous FTP":      "ftp://ftp.sec.gov/edgar/",
		"Cloud HTTP":         "https://www.sec.gov/Archives/",
	}

	r := NewReader(strings.NewReader(masterHeader + masterRows))
	require.NoError(t, r.ReadHeader())
	assert.Equal(t, wantHeader, r.Header())
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		r.LastReceived())

	header := r.Header()
	header["foo"] = "bar"
	assert.Equal(t, wantHeader, r.Header())
}

func TestReader_ReadHeader_errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "empty",
		},
		{
			name: "only blank lines",
			text: "\n \n\n",
		},
		{
			name: "without separator",
			text: "Description Master Index\n\n",
		},
		{
			name: "without Last Data Received",
			text: strings.Replace(masterHeader, "Last Data Received", "Last Data", 1),
		},
		{
			name: "bad Last Data Received",
			text: strings.Replace(masterHeader, "March 31, 2024", "2024-03-31", 1),
		},
		{
			name: "without row header",
			text: strings.Replace(masterHeader,
				"CIK|Company Name|Form Type|Date Filed|Filename\n", "", 1),
		},
		{
			name: "without divider",
			text: strings.Replace(masterHeader,
				"--------------------------------------------------------------------------------\n",
				"", 1),
		},
		{
			name: "two row headers",
			text: strings.Replace(masterHeader, "CIK|Company Name",
				"CIK|Company Name\nCIK|Company Name", 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.text))
			require.ErrorIs(t, r.ReadHeader(), ErrMalformed)
			assert.Nil(t, r.Header())
		})
	}
}

func TestReader_Each(t *testing.T) {
	r := NewReader(strings.NewReader(masterHeader + masterRows))

	var entries []Entry
	require.NoError(t, r.Each(func(e Entry) error {
		entries = append(entries, e)
		return nil
	}))
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		r.LastReceived())

	filed := time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC)
	want := []Entry{
		{
			CIK:         1000045,
			CompanyName: "OLD MARKET CAPITAL Corp",
			FormType:    "10-Q",
			DateFiled:   filed,
			Filename:    "edgar/data/1000045/0000950170-24-014566.txt",
		},
		{
			CIK:         1067983,
			CompanyName: "BERKSHIRE HATHAWAY INC",
			FormType:    "13F-HR",
			DateFiled:   filed,
			Filename:    "edgar/data/1067983/0000950123-24-002518.txt",
		},
		{
			CIK:         1067983,
			CompanyName: "BERKSHIRE HATHAWAY INC",
			FormType:    "SC 13G/A",
			DateFiled:   filed,
			Filename:    "edgar/data/1067983/0000950123-24-002520.txt",
		},
		{
			CIK:         1336528,
			CompanyName: `"Pershing Square" Capital Management, L.P.`,
			FormType:    "13F-HR",
			DateFiled:   filed,
			Filename:    "edgar/data/1336528/0001172661-24-000866.txt",
		},
	}
	assert.Equal(t, want, entries)
}

func TestReader_Each_headerOnly(t *testing.T) {
	r := NewReader(strings.NewReader(masterHeader))
	require.NoError(t, r.ReadHeader())
	require.NoError(t, r.Each(func(e Entry) error {
		t.Errorf("unexpected entry %#v", e)
		return nil
	}))
}

func TestReader_Each_errors(t *testing.T) {
	tests := []struct {
		name    string
		rows    string
		errorIs error
	}{
		{
			name:    "bad CIK",
			rows:    "10x|ACME|13F-HR|2024-02-14|edgar/data/1/0000000001-24-000001.txt\n",
			errorIs: strconv.ErrSyntax,
		},
		{
			name: "bad Date Filed",
			rows: "1|ACME|13F-HR|02/14/2024|edgar/data/1/0000000001-24-000001.txt\n",
		},
		{
			name: "missing field",
			rows: "1|ACME|13F-HR|2024-02-14\n",
		},
		{
			name: "extra field",
			rows: "1|ACME|13F-HR|2024-02-14|edgar/data/1/0000000001-24-000001.txt|x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(masterHeader + tt.rows))
			err := r.Each(func(Entry) error { return nil })
			require.ErrorIs(t, err, ErrMalformed)
			if tt.errorIs != nil {
				require.ErrorIs(t, err, tt.errorIs)
			}
		})
	}
}

func TestReader_Each_stop(t *testing.T) {
	errStop := errors.New("stop")
	r := NewReader(strings.NewReader(masterHeader + masterRows))

	var n int
	err := r.Each(func(Entry) error {
		n++
		return errStop
	})
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 1, n)
}

func TestEntry_Accession(t *testing.T) {
	e := Entry{Filename: "edgar/data/1067983/0000950123-24-002518.txt"}
	assert.Equal(t, "0000950123-24-002518", e.Accession())
}
