package holdings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CIK is SEC's Central Index Key. EDGAR sends it as a JSON number in some
// places and as a zero padded string in others.
type CIK uint32

func ParseCIK(s string) (CIK, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("failed parse %q as CIK: %w", s, err)
	}
	return CIK(v), nil
}

func (self CIK) String() string {
	return strconv.FormatUint(uint64(self), 10)
}

func (self CIK) Padded() string {
	return fmt.Sprintf("%010d", uint32(self))
}

func (self *CIK) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("unmarshal CIK: empty input")
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("unmarshal CIK: %w", err)
		}
		b = []byte(s)
	}

	cik, err := ParseCIK(string(bytes.TrimSpace(b)))
	if err != nil {
		return fmt.Errorf("unmarshal CIK: %w", err)
	}
	*self = cik
	return nil
}
