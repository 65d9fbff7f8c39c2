package idgen

import (
	"strings"

	"github.com/google/uuid"
)

const idLength = 16

// New returns a unique identifier tagged with the entity prefix,
// e.g. "playlist-3f2a9c1be04d4a77".
func New(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + raw[:idLength]
}
