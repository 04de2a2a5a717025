package auth

import "github.com/dmitrijs2005/newsroom/internal/common"

// Operation is what a caller asks to do with a resource.
type Operation int

const (
	OpRead Operation = iota
	OpCreate
	OpUpdate
	OpDelete
	// OpAdminister covers granting the administrator flag.
	OpAdminister
)

func (o Operation) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpAdminister:
		return "administer"
	default:
		return "unknown"
	}
}

// Authorize decides whether id may perform op on a resource owned by ownerID.
//
//	read        anyone, id may be nil
//	create      any identity
//	update      owner or administrator
//	delete      owner or administrator
//	administer  administrator
//
// A nil id on anything but read is common.ErrUnauthenticated. A resolved id
// that is not allowed gets common.ErrForbidden.
func Authorize(id *Identity, op Operation, ownerID int64) error {
	if op == OpRead {
		return nil
	}
	if id == nil {
		return common.ErrUnauthenticated
	}

	switch op {
	case OpCreate:
		return nil
	case OpUpdate, OpDelete:
		if id.IsAdmin || id.ID == ownerID {
			return nil
		}
	case OpAdminister:
		if id.IsAdmin {
			return nil
		}
	}
	return common.ErrForbidden
}
