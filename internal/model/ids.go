package model

import (
	"strings"

	"github.com/google/uuid"
)

var planItemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/theirongolddev/budgetboard/plan-item"))

// DeriveItemID returns a name-based UUID for the given parts. The same parts
// always yield the same ID.
func DeriveItemID(parts ...string) string {
	return uuid.NewSHA1(planItemNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}

// NewItemID returns a random UUID for a freshly created plan item.
func NewItemID() string {
	return uuid.NewString()
}
