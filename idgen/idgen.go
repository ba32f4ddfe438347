// Package idgen generates the primary keys used for every row the importer
// writes into the Ghost schema.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Length is the width of every generated id.
const Length = 24

// New returns a random 24 character lowercase hex id: a v4 UUID without
// separators, truncated. Uniqueness is enforced by the primary key of the
// table the id is inserted into.
func New() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex[:Length]
}
