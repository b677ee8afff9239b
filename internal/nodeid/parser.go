// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse creates a new Address by parsing its canonical string representation.
func Parse(rawID string) (Address, error) {
	if rawID == "" {
		return Address{}, fmt.Errorf("identifier cannot be empty")
	}

	parts := strings.Split(rawID, ".")
	path := make([]int, 0, len(parts))
	for _, segmentStr := range parts {
		if segmentStr == "" {
			return Address{}, fmt.Errorf("identifier path contains empty segment")
		}
		if strings.TrimLeft(segmentStr, "0123456789") != "" {
			return Address{}, fmt.Errorf("invalid path segment format: %q", segmentStr)
		}
		index, err := strconv.Atoi(segmentStr)
		if err != nil {
			return Address{}, fmt.Errorf("invalid path segment %q: %w", segmentStr, err)
		}
		path = append(path, index)
	}

	return Address{Path: path}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests
// and static tables.
func MustParse(rawID string) Address {
	addr, err := Parse(rawID)
	if err != nil {
		panic(err)
	}
	return addr
}
