package index

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
)

const dateFiledLayout = "2006-01-02"

const (
	idxCIK = iota
	idxCompanyName
	idxFormType
	idxDateFiled
	idxFilename

	numFields
)

// Entry is a row of master index.
type Entry struct {
	CIK         uint32
	CompanyName string
	FormType    string
	DateFiled   time.Time
	// Path of full text submission under Archives, like
	// edgar/data/1067983/0000950123-24-005891.txt
	Filename string
}

func newEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("got %d fields, want %d", len(record), numFields)
	}

	cik, err := strconv.ParseUint(record[idxCIK], 10, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("failed parse %q as CIK: %w", record[idxCIK], err)
	}

	filed, err := time.Parse(dateFiledLayout, record[idxDateFiled])
	if err != nil {
		return Entry{}, fmt.Errorf("failed parse %q as Date Filed: %w",
			record[idxDateFiled], err)
	}

	return Entry{
		CIK:         uint32(cik),
		CompanyName: record[idxCompanyName],
		FormType:    record[idxFormType],
		DateFiled:   filed,
		Filename:    record[idxFilename],
	}, nil
}

// Accession returns dash separated accession number from Filename.
func (self Entry) Accession() string {
	return strings.TrimSuffix(path.Base(self.Filename), ".txt")
}
