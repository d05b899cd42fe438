package errors

// ArchiveError is a specialized error type for failures in the byte-stream
// layer (internal/archive) and anything built directly on it: short reads,
// I/O failures on the backing file or memory buffer, and framing problems
// (unknown type tag, version too new, missing sentinel).
//
// It embeds baseError to inherit cause-chaining and structured details, then
// adds the archive coordinates that pinpoint exactly where in the byte
// stream the failure happened.
type ArchiveError struct {
	*baseError
	blockNum int64  // Which block was being read/written, -1 if not block-addressed.
	offset   int64  // Byte offset within the archive where the problem happened.
	path     string // Path of the backing file, empty for a memory archive.
}

// NewArchiveError creates a new archive-specific error.
func NewArchiveError(err error, code ErrorCode, msg string) *ArchiveError {
	return &ArchiveError{baseError: NewBaseError(err, code, msg), blockNum: -1}
}

// WithMessage updates the error message while preserving the ArchiveError type.
func (ae *ArchiveError) WithMessage(msg string) *ArchiveError {
	ae.baseError.WithMessage(msg)
	return ae
}

// WithDetail adds contextual information while preserving the ArchiveError type.
func (ae *ArchiveError) WithDetail(key string, value any) *ArchiveError {
	ae.baseError.WithDetail(key, value)
	return ae
}

// WithBlockNum records which block was involved in the error.
func (ae *ArchiveError) WithBlockNum(blockNum int64) *ArchiveError {
	ae.blockNum = blockNum
	return ae
}

// WithOffset records the byte position where the error occurred.
func (ae *ArchiveError) WithOffset(offset int64) *ArchiveError {
	ae.offset = offset
	return ae
}

// WithPath captures which backing file was open when the error occurred.
func (ae *ArchiveError) WithPath(path string) *ArchiveError {
	ae.path = path
	return ae
}

// BlockNum returns the block identifier where the error occurred, or -1 if
// the failure wasn't block-addressed.
func (ae *ArchiveError) BlockNum() int64 {
	return ae.blockNum
}

// Offset returns the byte offset within the archive where the error happened.
func (ae *ArchiveError) Offset() int64 {
	return ae.offset
}

// Path returns the path of the backing file that was being processed.
func (ae *ArchiveError) Path() string {
	return ae.path
}
