package idgen

import "github.com/google/uuid"

// NewFunc generates identifiers; it is a variable so tests can substitute a
// deterministic generator.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as a string. Workflow and
// session identities are minted here.
func New() string { return NewFunc() }
