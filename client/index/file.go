// Package index reads EDGAR full-index master files. A master file starts
// with "Name: value" header lines, then goes a row header, a dashed divider
// and one pipe separated row per filing.
package index

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"
	"time"
)

const (
	fieldDelimiter   = "|"
	lastReceivedName = "Last Data Received"
	lastReceivedLay  = "January 2, 2006"
)

var ErrMalformed = errors.New("malformed master index")

func NewReader(r io.Reader) *Reader {
	return &Reader{buf: bufio.NewReader(r)}
}

type Reader struct {
	buf          *bufio.Reader
	header       map[string]string
	lastReceived time.Time
}

// ReadHeader consumes everything up to the first row. Each calls it when it
// wasn't called yet.
func (self *Reader) ReadHeader() error {
	header, err := self.readHeaderLines()
	if err != nil {
		return err
	}

	lastReceived, err := time.Parse(lastReceivedLay, header[lastReceivedName])
	if err != nil {
		return fmt.Errorf("%w: header %q: %w", ErrMalformed, lastReceivedName, err)
	}

	if err := self.skipRowHeader(); err != nil {
		return err
	}

	self.header = header
	self.lastReceived = lastReceived
	return nil
}

func (self *Reader) readHeaderLines() (map[string]string, error) {
	header := make(map[string]string)
	for {
		s, err := self.readLine()
		if s == "" {
			if err != nil {
				return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
			} else if len(header) == 0 {
				continue
			}
			return header, nil
		}

		name, value, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("%w: header line %q", ErrMalformed, s)
		}
		header[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
}

func (self *Reader) skipRowHeader() error {
	var rowHeader bool
	for {
		s, err := self.readLine()
		switch {
		case strings.HasPrefix(s, "---"):
			if !rowHeader {
				return fmt.Errorf("%w: divider without row header", ErrMalformed)
			}
			return nil
		case s != "":
			if rowHeader {
				return fmt.Errorf("%w: unexpected line %q after row header",
					ErrMalformed, s)
			}
			rowHeader = true
		case err != nil:
			return fmt.Errorf("%w: row header: %w", ErrMalformed, err)
		}
	}
}

func (self *Reader) readLine() (string, error) {
	line, err := self.buf.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	return strings.TrimSpace(line), err //nolint:wrapcheck // wrapped by callers
}

func (self *Reader) Header() map[string]string {
	return maps.Clone(self.header)
}

// LastReceived returns the date of the last filing the file covers.
func (self *Reader) LastReceived() time.Time {
	return self.lastReceived
}

// Each calls fn for every row till EOF or the first error.
func (self *Reader) Each(fn func(Entry) error) error {
	if self.header == nil {
		if err := self.ReadHeader(); err != nil {
			return err
		}
	}

	for row := 1; ; row++ {
		s, err := self.readLine()
		if s != "" {
			entry, err := newEntry(strings.Split(s, fieldDelimiter))
			if err != nil {
				return fmt.Errorf("%w: row %d: %w", ErrMalformed, row, err)
			} else if err := fn(entry); err != nil {
				return err
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrMalformed, row, err)
		}
	}
}
