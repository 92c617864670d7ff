package tweets

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed mock/only-links.json
var onlyLinksFixture []byte

// Mock returns a fresh copy of the fixture used by mock mode.
// Every call decodes again so callers may truncate or edit the result.
func Mock() (*Collection, error) {
	var c Collection
	if err := json.Unmarshal(onlyLinksFixture, &c); err != nil {
		return nil, fmt.Errorf("failed to decode mock fixture: %w", err)
	}
	if c.Common == nil {
		c.Common = &Common{}
	}
	c.Common.Count = len(c.Data)
	return &c, nil
}
