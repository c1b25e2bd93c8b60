package tree

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotFound         = errors.New("node not found")
	ErrNameConflict     = errors.New("name already exists")
	ErrWrongKind        = errors.New("operation not supported on this node kind")
	ErrProtectedNode    = errors.New("root directory cannot be deleted")
	ErrInvalidName      = errors.New("invalid node name")
	ErrInvalidDirection = errors.New("invalid reorder direction")
)

// ParseError reports a structurally invalid persisted tree.
type ParseError struct {
	Line    int    // 1-based line of the offending token, 0 if unknown
	Offset  int64  // byte offset into the JSON document
	Message string // what was wrong
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d (offset %d): %s", e.Line, e.Offset, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// IsParseError reports whether any error in err's chain is a *ParseError.
func IsParseError(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr)
}
