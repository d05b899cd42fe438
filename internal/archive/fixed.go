package archive

import (
	"io"

	"github.com/tripwire-go/twdb/pkg/errors"
)

// FixedArchive is a Bidirectional archive over a byte slice of fixed
// capacity that never grows. It is the basis for rewriting a
// previously-sized hierarchical-DB node in place: the slice is a view into
// a record's existing payload bytes inside a cached block, and every write
// must fit within the bytes the record was originally allocated with.
//
// Unlike MemoryArchive, a write that would extend past the slice's capacity
// fails instead of growing — changing a node's serialized size would move
// every address that points at it, which nothing above this layer expects.
type FixedArchive struct {
	buf []byte
	pos int64
}

// NewFixedArchive wraps buf for in-place reads and writes. buf is used
// directly, not copied; writes through the archive mutate it.
func NewFixedArchive(buf []byte) *FixedArchive {
	return &FixedArchive{buf: buf}
}

func (fa *FixedArchive) ReadBlob(buf []byte) (int, error) {
	available := int64(len(fa.buf)) - fa.pos
	if available <= 0 {
		return 0, nil
	}
	n := int64(len(buf))
	if n > available {
		n = available
	}
	copy(buf[:n], fa.buf[fa.pos:fa.pos+n])
	fa.pos += n
	return int(n), nil
}

func (fa *FixedArchive) WriteBlob(buf []byte) error {
	need := fa.pos + int64(len(buf))
	if need > int64(len(fa.buf)) {
		return errors.NewArchiveError(
			nil, errors.ErrorCodeOutOfSpace, "fixed archive write exceeds the record's original size",
		).WithOffset(fa.pos).WithDetail("capacity", len(fa.buf)).WithDetail("writeLen", len(buf))
	}
	copy(fa.buf[fa.pos:need], buf)
	fa.pos = need
	return nil
}

func (fa *FixedArchive) ReadInt16() (int16, error) { return readInt16At(fa.ReadBlob, fa.pos) }
func (fa *FixedArchive) WriteInt16(v int16) error  { return writeInt16At(fa.WriteBlob, v) }
func (fa *FixedArchive) ReadInt32() (int32, error) { return readInt32At(fa.ReadBlob, fa.pos) }
func (fa *FixedArchive) WriteInt32(v int32) error  { return writeInt32At(fa.WriteBlob, v) }
func (fa *FixedArchive) ReadInt64() (int64, error) { return readInt64At(fa.ReadBlob, fa.pos) }
func (fa *FixedArchive) WriteInt64(v int64) error  { return writeInt64At(fa.WriteBlob, v) }
func (fa *FixedArchive) ReadString() (string, error) {
	return readStringAt(fa.ReadBlob, fa.pos)
}
func (fa *FixedArchive) WriteString(s string) error {
	return writeStringAt(fa.WriteBlob, s)
}

func (fa *FixedArchive) Length() (int64, error) {
	return int64(len(fa.buf)), nil
}

func (fa *FixedArchive) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = fa.pos + offset
	case io.SeekEnd:
		target = int64(len(fa.buf)) + offset
	default:
		return 0, errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "invalid seek whence")
	}
	if target < 0 || target > int64(len(fa.buf)) {
		return 0, errors.NewArchiveError(nil, errors.ErrorCodeBadAddress, "seek target out of bounds").
			WithOffset(target)
	}
	fa.pos = target
	return fa.pos, nil
}

func (fa *FixedArchive) CurrentPos() (int64, error) {
	return fa.pos, nil
}

// Truncate on a FixedArchive always fails: its entire point is that its
// size never changes.
func (fa *FixedArchive) Truncate(size int64) error {
	return errors.NewArchiveError(
		nil, errors.ErrorCodeInvalidInput, "fixed archive cannot be truncated",
	).WithDetail("requestedSize", size)
}

var _ Bidirectional = (*FixedArchive)(nil)
