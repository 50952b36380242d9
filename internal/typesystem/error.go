package typesystem

import "fmt"

// UnknownKindError indicates a kind name outside the closed kind set
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown type kind: %q", e.Name)
}

func NewUnknownKindError(name string) *UnknownKindError {
	return &UnknownKindError{Name: name}
}

// Error kinds carried by TError. They classify value-level faults; they are
// not Go errors.
const (
	ErrorKindDivisionByZero = "divisionByZero"
	ErrorKindRuntime        = "runtime"
	ErrorKindUser           = "user"
	ErrorKindNotFound       = "notFound"
	ErrorKindDepth          = "depth"
	ErrorKindType           = "type"
)
