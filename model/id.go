package model

import (
	"strings"

	"github.com/google/uuid"
)

// idNamespace scopes deterministic ids derived by this package.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("pagina"))

// DeriveID returns a deterministic UUID for the given parts. The same
// parts always yield the same id, so re-running a pipeline over the same
// inputs reproduces its annotation ids.
func DeriveID(parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "|"))).String()
}

// NewID returns a random UUID
func NewID() string {
	return uuid.NewString()
}
