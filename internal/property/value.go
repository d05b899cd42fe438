package property

import (
	"fmt"

	"github.com/tripwire-go/twdb/internal/archive"
)

// ValueKind tags which concrete Value implementation a slot holds, and is
// the discriminant persisted alongside every value on disk.
type ValueKind string

const (
	KindInt32  ValueKind = "i32"
	KindInt64  ValueKind = "i64"
	KindString ValueKind = "str"
	KindBool   ValueKind = "bool"
	KindBytes  ValueKind = "bytes"
)

// Value is a single polymorphic property value: one attribute (file size,
// mode bits, owner name, a raw signature digest, ...) of one object.
type Value interface {
	Kind() ValueKind
	Equal(other Value) bool
	Copy() Value
	String() string
	Read(a archive.Archive) error
	Write(a archive.Archive) error
}

// NewValue constructs a zero-valued Value for the given kind, used by
// PropertySet.Read to materialize a slot before deserializing into it.
func NewValue(kind ValueKind) (Value, error) {
	switch kind {
	case KindInt32:
		return new(Int32Value), nil
	case KindInt64:
		return new(Int64Value), nil
	case KindString:
		return new(StringValue), nil
	case KindBool:
		return new(BoolValue), nil
	case KindBytes:
		return new(BytesValue), nil
	default:
		return nil, newUnknownKindErr(string(kind))
	}
}

// Int32Value holds a signed 32-bit integer attribute (permission bits,
// small counters).
type Int32Value int32

func (v Int32Value) Kind() ValueKind { return KindInt32 }
func (v Int32Value) String() string  { return fmt.Sprintf("%d", int32(v)) }
func (v Int32Value) Copy() Value     { return v }

func (v Int32Value) Equal(other Value) bool {
	o, ok := other.(Int32Value)
	return ok && v == o
}

func (v Int32Value) Write(a archive.Archive) error {
	return a.WriteInt32(int32(v))
}

func (v *Int32Value) Read(a archive.Archive) error {
	n, err := a.ReadInt32()
	if err != nil {
		return err
	}
	*v = Int32Value(n)
	return nil
}

// Int64Value holds a signed 64-bit integer attribute (file size, inode
// number, mtime).
type Int64Value int64

func (v Int64Value) Kind() ValueKind { return KindInt64 }
func (v Int64Value) String() string  { return fmt.Sprintf("%d", int64(v)) }
func (v Int64Value) Copy() Value     { return v }

func (v Int64Value) Equal(other Value) bool {
	o, ok := other.(Int64Value)
	return ok && v == o
}

func (v Int64Value) Write(a archive.Archive) error {
	return a.WriteInt64(int64(v))
}

func (v *Int64Value) Read(a archive.Archive) error {
	n, err := a.ReadInt64()
	if err != nil {
		return err
	}
	*v = Int64Value(n)
	return nil
}

// StringValue holds a text attribute (owner name, group name, symlink target).
type StringValue string

func (v StringValue) Kind() ValueKind { return KindString }
func (v StringValue) String() string  { return string(v) }
func (v StringValue) Copy() Value     { return v }

func (v StringValue) Equal(other Value) bool {
	o, ok := other.(StringValue)
	return ok && v == o
}

func (v StringValue) Write(a archive.Archive) error {
	return a.WriteString(string(v))
}

func (v *StringValue) Read(a archive.Archive) error {
	s, err := a.ReadString()
	if err != nil {
		return err
	}
	*v = StringValue(s)
	return nil
}

// BoolValue holds a boolean attribute (e.g. "is a symlink").
type BoolValue bool

func (v BoolValue) Kind() ValueKind { return KindBool }
func (v BoolValue) Copy() Value     { return v }

func (v BoolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (v BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && v == o
}

func (v BoolValue) Write(a archive.Archive) error {
	if v {
		return a.WriteInt16(1)
	}
	return a.WriteInt16(0)
}

func (v *BoolValue) Read(a archive.Archive) error {
	n, err := a.ReadInt16()
	if err != nil {
		return err
	}
	*v = n != 0
	return nil
}

// BytesValue holds a raw byte-string attribute, used for signature digests.
type BytesValue []byte

func (v BytesValue) Kind() ValueKind { return KindBytes }
func (v BytesValue) String() string  { return fmt.Sprintf("%x", []byte(v)) }

func (v BytesValue) Copy() Value {
	out := make(BytesValue, len(v))
	copy(out, v)
	return out
}

func (v BytesValue) Equal(other Value) bool {
	o, ok := other.(BytesValue)
	if !ok || len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

func (v BytesValue) Write(a archive.Archive) error {
	if err := a.WriteInt32(int32(len(v))); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	return a.WriteBlob(v)
}

func (v *BytesValue) Read(a archive.Archive) error {
	n, err := a.ReadInt32()
	if err != nil {
		return err
	}
	buf := make([]byte, n)
	if n > 0 {
		got, err := a.ReadBlob(buf)
		if err != nil {
			return err
		}
		if got != int(n) {
			return archiveShortReadErr(int(n), got)
		}
	}
	*v = buf
	return nil
}
