package archive

import (
	"io"

	"github.com/tripwire-go/twdb/pkg/errors"
)

// MemoryArchive is a Bidirectional archive backed by a growable in-memory
// buffer. Writes past the current length grow the buffer geometrically
// (doubling, with a floor) rather than exactly to the write size, so a
// sequence of small appends doesn't reallocate on every call.
type MemoryArchive struct {
	buf  []byte
	pos  int64
	size int64 // logical length; buf may be larger than this.
}

// minMemoryGrowth is the smallest amount a MemoryArchive grows by when a
// write needs more room than the buffer currently has.
const minMemoryGrowth = 256

// NewMemoryArchive returns an empty, writable memory archive.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{}
}

// NewMemoryArchiveFromBytes starts an archive holding a copy of b; the
// caller's slice is not aliased, and writes grow the copy as usual.
func NewMemoryArchiveFromBytes(b []byte) *MemoryArchive {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &MemoryArchive{buf: buf, size: int64(len(b))}
}

// Bytes returns the archive's current logical content. The returned slice
// aliases the archive's internal buffer and must not be retained past the
// next write.
func (m *MemoryArchive) Bytes() []byte {
	return m.buf[:m.size]
}

func (m *MemoryArchive) ReadBlob(buf []byte) (int, error) {
	available := m.size - m.pos
	if available <= 0 {
		return 0, nil
	}
	n := int64(len(buf))
	if n > available {
		n = available
	}
	copy(buf[:n], m.buf[m.pos:m.pos+n])
	m.pos += n
	return int(n), nil
}

func (m *MemoryArchive) WriteBlob(buf []byte) error {
	need := m.pos + int64(len(buf))
	m.ensureCapacity(need)
	copy(m.buf[m.pos:need], buf)
	if need > m.size {
		m.size = need
	}
	m.pos = need
	return nil
}

// ensureCapacity grows the backing buffer so it can hold at least need
// bytes, doubling the current capacity (with a floor of minMemoryGrowth)
// until it's large enough.
func (m *MemoryArchive) ensureCapacity(need int64) {
	if int64(len(m.buf)) >= need {
		return
	}
	newCap := int64(len(m.buf))
	if newCap < minMemoryGrowth {
		newCap = minMemoryGrowth
	}
	for newCap < need {
		newCap *= 2
	}
	grown := make([]byte, newCap)
	copy(grown, m.buf[:m.size])
	m.buf = grown
}

func (m *MemoryArchive) ReadInt16() (int16, error) {
	return readInt16At(m.ReadBlob, m.pos)
}

func (m *MemoryArchive) WriteInt16(v int16) error {
	return writeInt16At(m.WriteBlob, v)
}

func (m *MemoryArchive) ReadInt32() (int32, error) {
	return readInt32At(m.ReadBlob, m.pos)
}

func (m *MemoryArchive) WriteInt32(v int32) error {
	return writeInt32At(m.WriteBlob, v)
}

func (m *MemoryArchive) ReadInt64() (int64, error) {
	return readInt64At(m.ReadBlob, m.pos)
}

func (m *MemoryArchive) WriteInt64(v int64) error {
	return writeInt64At(m.WriteBlob, v)
}

func (m *MemoryArchive) ReadString() (string, error) {
	return readStringAt(m.ReadBlob, m.pos)
}

func (m *MemoryArchive) WriteString(s string) error {
	return writeStringAt(m.WriteBlob, s)
}

func (m *MemoryArchive) Length() (int64, error) {
	return m.size, nil
}

func (m *MemoryArchive) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = m.pos + offset
	case io.SeekEnd:
		target = m.size + offset
	default:
		return 0, errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "invalid seek whence").
			WithDetail("whence", whence)
	}
	if target < 0 {
		return 0, errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "negative seek target").
			WithOffset(target)
	}
	m.pos = target
	return m.pos, nil
}

func (m *MemoryArchive) CurrentPos() (int64, error) {
	return m.pos, nil
}

func (m *MemoryArchive) Truncate(size int64) error {
	if size < 0 {
		return errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "negative truncate size")
	}
	m.ensureCapacity(size)
	if size < m.size {
		clear(m.buf[size:m.size])
	}
	m.size = size
	if m.pos > size {
		m.pos = size
	}
	return nil
}

var _ Bidirectional = (*MemoryArchive)(nil)
