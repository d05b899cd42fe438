// Package archive provides the byte-stream abstraction every other layer of
// the database is built on: sequential and random-access readers/writers over
// either a growable in-memory buffer or a backing file, with typed
// big-endian reads and writes.
//
// Every multi-byte field the database persists — slot offsets, record
// addresses, string lengths — goes through this layer so byte order is
// handled in exactly one place.
package archive

import "github.com/tripwire-go/twdb/pkg/errors"

// Archive is the minimal contract every byte stream satisfies: raw blob I/O
// plus typed reads/writes in network byte order. A sequential archive (no
// seek, no length) satisfies this alone; Bidirectional extends it.
type Archive interface {
	// ReadBlob reads up to len(buf) bytes, returning the number actually
	// read. A short read signals end-of-stream; it is not itself an error.
	ReadBlob(buf []byte) (int, error)

	// WriteBlob writes exactly len(buf) bytes or returns an error.
	WriteBlob(buf []byte) error

	ReadInt16() (int16, error)
	WriteInt16(v int16) error

	ReadInt32() (int32, error)
	WriteInt32(v int32) error

	ReadInt64() (int64, error)
	WriteInt64(v int64) error

	// ReadString reads a network-order length prefix followed by that many
	// raw bytes.
	ReadString() (string, error)

	// WriteString writes a network-order length prefix followed by the
	// string's raw bytes.
	WriteString(s string) error
}

// Bidirectional is an Archive that additionally supports seeking, length
// queries, and truncation — the contract the block file and record layers
// need for random access.
type Bidirectional interface {
	Archive

	// Length returns the current size of the archive in bytes.
	Length() (int64, error)

	// Seek repositions the archive's cursor. whence follows io.Seek* semantics.
	Seek(offset int64, whence int) (int64, error)

	// CurrentPos returns the cursor's current byte offset.
	CurrentPos() (int64, error)

	// Truncate resizes the archive to exactly size bytes.
	Truncate(size int64) error
}

// newArchiveIOError builds the canonical ArchiveError for a read/write
// failure at the given offset.
func newArchiveIOError(cause error, op string, offset int64) error {
	return errors.NewArchiveError(cause, errors.ErrorCodeArchiveIO, "archive "+op+" failed").
		WithOffset(offset).
		WithDetail("operation", op)
}

// newShortReadError builds the canonical ArchiveError for an unexpected
// end-of-stream in the middle of a typed read.
func newShortReadError(op string, offset int64, want, got int) error {
	return errors.NewArchiveError(nil, errors.ErrorCodeArchiveIO, "unexpected end of stream reading "+op).
		WithOffset(offset).
		WithDetail("operation", op).
		WithDetail("wantBytes", want).
		WithDetail("gotBytes", got)
}
