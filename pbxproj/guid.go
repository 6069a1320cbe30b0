package pbxproj

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
)

const (
	guidLength      = 24
	maxGUIDAttempts = 32
)

// GUIDGenerator returns a candidate object identifier.
type GUIDGenerator func() (string, error)

// RandomGUID cuts a 24 character upper-case hex identifier out of a random V4 UUID.
func RandomGUID() (string, error) {
	u, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid, error: %s", err)
	}
	hex := strings.ReplaceAll(u.String(), "-", "")
	return strings.ToUpper(hex[len(hex)-guidLength:]), nil
}

// reserveGUIDs returns n distinct identifiers unused by the project.
// Nothing is registered until the objects are added.
func (p *Project) reserveGUIDs(n int) ([]string, error) {
	generate := p.generateGUID
	if generate == nil {
		generate = RandomGUID
	}

	taken := map[string]bool{}
	guids := make([]string, 0, n)
	for attempt := 0; len(guids) < n; attempt++ {
		if attempt >= maxGUIDAttempts*n {
			return nil, fmt.Errorf("failed to generate %d unique object identifiers", n)
		}
		guid, err := generate()
		if err != nil {
			return nil, err
		}
		if _, exists := p.objects[guid]; exists || taken[guid] {
			continue
		}
		taken[guid] = true
		guids = append(guids, guid)
	}
	return guids, nil
}
