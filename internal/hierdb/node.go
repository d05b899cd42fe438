package hierdb

import (
	"github.com/tripwire-go/twdb/internal/archive"
	"github.com/tripwire-go/twdb/internal/recordfile"
	"github.com/tripwire-go/twdb/internal/serialize"
)

const (
	tagRoot      = "hierdb.root"
	tagArrayInfo = "hierdb.arrayinfo"
	tagEntry     = "hierdb.entry"
)

func writeAddr(a archive.Archive, addr recordfile.Address) error {
	if err := a.WriteInt64(addr.Block); err != nil {
		return err
	}
	return a.WriteInt32(addr.Slot)
}

func readAddr(a archive.Archive) (recordfile.Address, error) {
	blockNum, err := a.ReadInt64()
	if err != nil {
		return recordfile.Address{}, err
	}
	slot, err := a.ReadInt32()
	if err != nil {
		return recordfile.Address{}, err
	}
	return recordfile.Address{Block: blockNum, Slot: slot}, nil
}

// Root is the single node that always lives at (0,0): the database's
// case-sensitivity and path-delimiter configuration plus the address of
// the root directory's ArrayInfo.
type Root struct {
	RootArrayInfo recordfile.Address
	CaseSensitive bool
	Delimiter     rune
}

func (r *Root) Tag() string    { return tagRoot }
func (r *Root) Version() int32 { return 1 }

func (r *Root) WriteBody(a archive.Archive) error {
	if err := writeAddr(a, r.RootArrayInfo); err != nil {
		return err
	}
	caseFlag := int32(0)
	if r.CaseSensitive {
		caseFlag = 1
	}
	if err := a.WriteInt32(caseFlag); err != nil {
		return err
	}
	return a.WriteInt32(int32(r.Delimiter))
}

func (r *Root) ReadBody(a archive.Archive, _ int32) error {
	addr, err := readAddr(a)
	if err != nil {
		return err
	}
	caseFlag, err := a.ReadInt32()
	if err != nil {
		return err
	}
	delim, err := a.ReadInt32()
	if err != nil {
		return err
	}
	r.RootArrayInfo = addr
	r.CaseSensitive = caseFlag != 0
	r.Delimiter = rune(delim)
	return nil
}

// ArrayInfo is the per-directory record: the address of the parent
// directory's ArrayInfo (null at the root) and the address of the first
// Entry in this directory's linked list (null for an empty directory).
type ArrayInfo struct {
	Parent recordfile.Address
	Array  recordfile.Address
}

func (ai *ArrayInfo) Tag() string    { return tagArrayInfo }
func (ai *ArrayInfo) Version() int32 { return 1 }

func (ai *ArrayInfo) WriteBody(a archive.Archive) error {
	if err := writeAddr(a, ai.Parent); err != nil {
		return err
	}
	return writeAddr(a, ai.Array)
}

func (ai *ArrayInfo) ReadBody(a archive.Archive, _ int32) error {
	parent, err := readAddr(a)
	if err != nil {
		return err
	}
	array, err := readAddr(a)
	if err != nil {
		return err
	}
	ai.Parent = parent
	ai.Array = array
	return nil
}

// Entry is one named child of a directory: its short name, the address of
// its payload record (null if it carries no data), the address of its
// child directory's ArrayInfo (null if it's a leaf), and the address of
// the next Entry in the directory's linked list (null if it's the last).
type Entry struct {
	Name  string
	Data  recordfile.Address
	Child recordfile.Address
	Next  recordfile.Address
}

func (e *Entry) Tag() string    { return tagEntry }
func (e *Entry) Version() int32 { return 1 }

func (e *Entry) WriteBody(a archive.Archive) error {
	if err := a.WriteString(e.Name); err != nil {
		return err
	}
	if err := writeAddr(a, e.Data); err != nil {
		return err
	}
	if err := writeAddr(a, e.Child); err != nil {
		return err
	}
	return writeAddr(a, e.Next)
}

func (e *Entry) ReadBody(a archive.Archive, _ int32) error {
	name, err := a.ReadString()
	if err != nil {
		return err
	}
	data, err := readAddr(a)
	if err != nil {
		return err
	}
	child, err := readAddr(a)
	if err != nil {
		return err
	}
	next, err := readAddr(a)
	if err != nil {
		return err
	}
	e.Name = name
	e.Data = data
	e.Child = child
	e.Next = next
	return nil
}

func init() {
	serialize.Register(tagRoot, func() serialize.Node { return &Root{} })
	serialize.Register(tagArrayInfo, func() serialize.Node { return &ArrayInfo{} })
	serialize.Register(tagEntry, func() serialize.Node { return &Entry{} })
}
