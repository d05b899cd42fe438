package archive

import (
	"encoding/binary"
)

// blobReader is the minimal primitive the typed helpers below need: read
// exactly len(buf) bytes or fail. Both MemoryArchive and FileArchive expose
// ReadBlob with short-read semantics for bulk reads, but typed fields must
// never be short — readFull enforces that and wraps the failure with the
// field name for diagnosability.
type blobReader func(buf []byte) (int, error)
type blobWriter func(buf []byte) error

// readFull reads exactly len(buf) bytes using the given ReadBlob-shaped
// function, translating a short read into an ArchiveError.
func readFull(read blobReader, buf []byte, field string, offset int64) error {
	n, err := read(buf)
	if err != nil {
		return newArchiveIOError(err, "read "+field, offset)
	}
	if n != len(buf) {
		return newShortReadError(field, offset, len(buf), n)
	}
	return nil
}

func readInt16At(read blobReader, offset int64) (int16, error) {
	var buf [2]byte
	if err := readFull(read, buf[:], "int16", offset); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

func writeInt16At(write blobWriter, v int16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	return write(buf[:])
}

func readInt32At(read blobReader, offset int64) (int32, error) {
	var buf [4]byte
	if err := readFull(read, buf[:], "int32", offset); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func writeInt32At(write blobWriter, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	return write(buf[:])
}

func readInt64At(read blobReader, offset int64) (int64, error) {
	var buf [8]byte
	if err := readFull(read, buf[:], "int64", offset); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func writeInt64At(write blobWriter, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	return write(buf[:])
}

func readStringAt(read blobReader, offset int64) (string, error) {
	length, err := readInt32At(read, offset)
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", newShortReadError("string length", offset, 0, 0)
	}
	if length == 0 {
		return "", nil
	}
	buf := make([]byte, length)
	if err := readFull(read, buf, "string body", offset+4); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeStringAt(write blobWriter, s string) error {
	if err := writeInt32At(write, int32(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return write([]byte(s))
}
