package errors

// RecordError provides specialized error handling for record-level
// operations: allocating, reading, writing, or deleting a (block, slot)
// record inside internal/recordarray and internal/recordfile.
//
// This structure extends the base error system with the addressing and
// sizing context needed to diagnose a bad-address or out-of-space failure
// without re-deriving it from a stack trace.
type RecordError struct {
	*baseError

	// blockNum identifies which block the record address pointed into.
	blockNum int64

	// slot identifies which slot within the block was being accessed.
	slot int32

	// operation names the call that failed (e.g. "AddItem", "DeleteItem",
	// "GetDataForReading").
	operation string

	// size is the payload size involved in the failure, relevant for
	// OutOfSpace errors.
	size int
}

// NewRecordError creates a new record-specific error with the provided context.
func NewRecordError(err error, code ErrorCode, msg string) *RecordError {
	return &RecordError{baseError: NewBaseError(err, code, msg)}
}

// Override base error methods to return *RecordError instead of *baseError,
// so the fluent chain keeps exposing record-specific methods.

// WithMessage updates the error message while preserving the RecordError type.
func (re *RecordError) WithMessage(msg string) *RecordError {
	re.baseError.WithMessage(msg)
	return re
}

// WithDetail adds contextual information while preserving the RecordError type.
func (re *RecordError) WithDetail(key string, value any) *RecordError {
	re.baseError.WithDetail(key, value)
	return re
}

// WithBlockNum records which block the failing address pointed into.
func (re *RecordError) WithBlockNum(blockNum int64) *RecordError {
	re.blockNum = blockNum
	return re
}

// WithSlot records which slot within the block was being accessed.
func (re *RecordError) WithSlot(slot int32) *RecordError {
	re.slot = slot
	return re
}

// WithOperation records which record-file/record-array call failed.
func (re *RecordError) WithOperation(operation string) *RecordError {
	re.operation = operation
	return re
}

// WithSize records the payload size involved in the failure.
func (re *RecordError) WithSize(size int) *RecordError {
	re.size = size
	return re
}

// BlockNum returns the block identifier involved in the error.
func (re *RecordError) BlockNum() int64 {
	return re.blockNum
}

// Slot returns the slot index involved in the error.
func (re *RecordError) Slot() int32 {
	return re.slot
}

// Operation returns the name of the operation that failed.
func (re *RecordError) Operation() string {
	return re.operation
}

// Size returns the payload size involved in the failure.
func (re *RecordError) Size() int {
	return re.size
}

// NewBadAddressError builds the canonical RecordError for a null or
// out-of-range (block, slot) access.
func NewBadAddressError(operation string, blockNum int64, slot int32) *RecordError {
	return NewRecordError(nil, ErrorCodeBadAddress, "record address is null or out of range").
		WithOperation(operation).
		WithBlockNum(blockNum).
		WithSlot(slot)
}

// NewOutOfSpaceError builds the canonical RecordError for a payload that
// cannot fit in any single block.
func NewOutOfSpaceError(operation string, size int) *RecordError {
	return NewRecordError(nil, ErrorCodeOutOfSpace, "record size exceeds maximum block capacity").
		WithOperation(operation).
		WithSize(size)
}
