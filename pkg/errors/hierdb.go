package errors

// HierDBError provides specialized error handling for hierarchical-database
// operations: cursor descend/ascend/seek, entry creation and deletion, and
// child-array creation and deletion.
//
// Most HierDB failures are the handful of directory-tree conditions the
// cursor contract documents — an entry that still has a child, a non-empty
// directory — so this type carries the path and name involved rather than
// a byte offset.
type HierDBError struct {
	*baseError

	// path is the directory path (from root) the cursor was positioned at.
	path string

	// name is the entry name involved in the failing operation.
	name string

	// operation names the cursor call that failed.
	operation string
}

// NewHierDBError creates a new HierDB-specific error with the provided context.
func NewHierDBError(err error, code ErrorCode, msg string) *HierDBError {
	return &HierDBError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while preserving the HierDBError type.
func (he *HierDBError) WithMessage(msg string) *HierDBError {
	he.baseError.WithMessage(msg)
	return he
}

// WithDetail adds contextual information while preserving the HierDBError type.
func (he *HierDBError) WithDetail(key string, value any) *HierDBError {
	he.baseError.WithDetail(key, value)
	return he
}

// WithPath records the directory path the cursor was positioned at.
func (he *HierDBError) WithPath(path string) *HierDBError {
	he.path = path
	return he
}

// WithName records the entry name involved in the failing operation.
func (he *HierDBError) WithName(name string) *HierDBError {
	he.name = name
	return he
}

// WithOperation records which cursor call failed.
func (he *HierDBError) WithOperation(operation string) *HierDBError {
	he.operation = operation
	return he
}

// Path returns the directory path the cursor was positioned at.
func (he *HierDBError) Path() string {
	return he.path
}

// Name returns the entry name involved in the error.
func (he *HierDBError) Name() string {
	return he.name
}

// Operation returns the name of the cursor operation that failed.
func (he *HierDBError) Operation() string {
	return he.operation
}

// NewHasChildrenError builds the canonical HierDBError for deleting an entry
// that still has a child directory.
func NewHasChildrenError(path, name string) *HierDBError {
	return NewHierDBError(nil, ErrorCodeHasChildren, "entry has a child directory").
		WithOperation("DeleteEntry").
		WithPath(path).
		WithName(name)
}

// NewNotEmptyError builds the canonical HierDBError for deleting a child
// array whose entry list is still non-null.
func NewNotEmptyError(path string) *HierDBError {
	return NewHierDBError(nil, ErrorCodeNotEmpty, "directory is not empty").
		WithOperation("DeleteChildArray").
		WithPath(path)
}
