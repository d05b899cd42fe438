// Package serialize implements the typed, tag-dispatched object format
// every hierarchical-DB node is written and read through: a stable type
// tag, a version, and the object's own body, with a global registry
// mapping tags back to factories that produce empty instances to read
// into.
package serialize

import (
	"github.com/tripwire-go/twdb/internal/archive"
	"github.com/tripwire-go/twdb/pkg/errors"
)

// Node is any object that can be written and read through the tagged
// archive format. Tag and Version identify the on-disk encoding; WriteBody
// and ReadBody handle everything after that prefix.
type Node interface {
	Tag() string
	Version() int32
	WriteBody(a archive.Archive) error
	ReadBody(a archive.Archive, version int32) error
}

// Factory produces an empty instance of one node type, ready for ReadBody.
type Factory func() Node

var registry = map[string]Factory{}

// Register adds tag to the global registry. Called from each node type's
// package init, never at runtime.
func Register(tag string, f Factory) {
	registry[tag] = f
}

// WriteNode emits n's type tag, its version, and its body.
func WriteNode(a archive.Archive, n Node) error {
	if err := a.WriteString(n.Tag()); err != nil {
		return err
	}
	if err := a.WriteInt32(n.Version()); err != nil {
		return err
	}
	return n.WriteBody(a)
}

// ReadNode reads a tag and version, looks up the matching factory, and
// invokes the resulting instance's ReadBody. A version newer than the
// factory's own Version is fatal: this implementation cannot know what
// fields a future version added.
func ReadNode(a archive.Archive) (Node, error) {
	tag, err := a.ReadString()
	if err != nil {
		return nil, err
	}
	version, err := a.ReadInt32()
	if err != nil {
		return nil, err
	}

	factory, ok := registry[tag]
	if !ok {
		return nil, errors.NewArchiveError(nil, errors.ErrorCodeArchiveFormat, "unknown node type tag").
			WithDetail("tag", tag)
	}

	n := factory()
	if version > n.Version() {
		return nil, errors.NewArchiveError(
			nil, errors.ErrorCodeArchiveFormat, "node version is newer than this implementation understands",
		).WithDetail("tag", tag).WithDetail("fileVersion", version).WithDetail("implVersion", n.Version())
	}
	if err := n.ReadBody(a, version); err != nil {
		return nil, err
	}
	return n, nil
}

// Marshal serializes n into a freshly grown buffer, for a brand-new record
// whose size isn't yet fixed.
func Marshal(n Node) ([]byte, error) {
	mem := archive.NewMemoryArchive()
	if err := WriteNode(mem, n); err != nil {
		return nil, err
	}
	out := make([]byte, len(mem.Bytes()))
	copy(out, mem.Bytes())
	return out, nil
}

// Rewrite re-serializes n over buf in place. buf must be exactly the size
// the record was originally marshaled at: a write that doesn't fit fails
// rather than growing, since changing a node's size would move every
// address pointing at it.
func Rewrite(buf []byte, n Node) error {
	fixed := archive.NewFixedArchive(buf)
	return WriteNode(fixed, n)
}

// Unmarshal reads a node from a record's raw bytes.
func Unmarshal(buf []byte) (Node, error) {
	mem := archive.NewMemoryArchiveFromBytes(buf)
	return ReadNode(mem)
}
