package archive

import (
	"io"
	"os"

	"github.com/tripwire-go/twdb/pkg/errors"
)

// FileArchive is a Bidirectional archive backed directly by an *os.File.
// It is intentionally unbuffered: every ReadBlob/WriteBlob is a direct
// syscall, on the assumption that callers above it (the block file) already
// batch their I/O into BLOCK_SIZE-aligned chunks.
type FileArchive struct {
	file *os.File
	path string
}

// NewFileArchive wraps an already-open file. path is retained only for
// error reporting.
func NewFileArchive(file *os.File, path string) *FileArchive {
	return &FileArchive{file: file, path: path}
}

func (f *FileArchive) ReadBlob(buf []byte) (int, error) {
	n, err := f.file.Read(buf)
	if err != nil && err != io.EOF {
		return n, f.ioErr(err, "read")
	}
	return n, nil
}

func (f *FileArchive) WriteBlob(buf []byte) error {
	n, err := f.file.Write(buf)
	if err != nil {
		return f.ioErr(err, "write")
	}
	if n != len(buf) {
		pos, _ := f.CurrentPos()
		return newShortReadError("write", pos, len(buf), n)
	}
	return nil
}

func (f *FileArchive) ReadInt16() (int16, error) {
	pos, _ := f.CurrentPos()
	return readInt16At(f.ReadBlob, pos)
}

func (f *FileArchive) WriteInt16(v int16) error {
	return writeInt16At(f.WriteBlob, v)
}

func (f *FileArchive) ReadInt32() (int32, error) {
	pos, _ := f.CurrentPos()
	return readInt32At(f.ReadBlob, pos)
}

func (f *FileArchive) WriteInt32(v int32) error {
	return writeInt32At(f.WriteBlob, v)
}

func (f *FileArchive) ReadInt64() (int64, error) {
	pos, _ := f.CurrentPos()
	return readInt64At(f.ReadBlob, pos)
}

func (f *FileArchive) WriteInt64(v int64) error {
	return writeInt64At(f.WriteBlob, v)
}

func (f *FileArchive) ReadString() (string, error) {
	pos, _ := f.CurrentPos()
	return readStringAt(f.ReadBlob, pos)
}

func (f *FileArchive) WriteString(s string) error {
	return writeStringAt(f.WriteBlob, s)
}

func (f *FileArchive) Length() (int64, error) {
	stat, err := f.file.Stat()
	if err != nil {
		return 0, f.ioErr(err, "stat")
	}
	return stat.Size(), nil
}

func (f *FileArchive) Seek(offset int64, whence int) (int64, error) {
	pos, err := f.file.Seek(offset, whence)
	if err != nil {
		return 0, f.ioErr(err, "seek")
	}
	return pos, nil
}

func (f *FileArchive) CurrentPos() (int64, error) {
	return f.file.Seek(0, io.SeekCurrent)
}

func (f *FileArchive) Truncate(size int64) error {
	if err := f.file.Truncate(size); err != nil {
		return f.ioErr(err, "truncate")
	}
	return nil
}

// Sync flushes the file's in-kernel buffers to stable storage.
func (f *FileArchive) Sync() error {
	if err := f.file.Sync(); err != nil {
		return f.ioErr(err, "sync")
	}
	return nil
}

// Close releases the underlying file descriptor.
func (f *FileArchive) Close() error {
	if err := f.file.Close(); err != nil {
		return f.ioErr(err, "close")
	}
	return nil
}

func (f *FileArchive) ioErr(cause error, op string) error {
	pos, _ := f.CurrentPos()
	return errors.NewArchiveError(cause, errors.ErrorCodeArchiveIO, "archive "+op+" failed").
		WithPath(f.path).
		WithOffset(pos).
		WithDetail("operation", op)
}

var _ Bidirectional = (*FileArchive)(nil)
