package hierdb

import (
	"github.com/tripwire-go/twdb/internal/recordfile"
	"github.com/tripwire-go/twdb/pkg/errors"
)

func errBadCursorState(operation, msg string) error {
	return errors.NewHierDBError(nil, errors.ErrorCodeInvalidInput, msg).WithOperation(operation)
}

func errUnexpectedNodeType(operation string, addr recordfile.Address) error {
	return errors.NewHierDBError(nil, errors.ErrorCodeInternal, "node at address is not the expected type").
		WithOperation(operation).
		WithDetail("block", addr.Block).
		WithDetail("slot", addr.Slot)
}
