package hierdb

import (
	"strings"

	"github.com/tripwire-go/twdb/internal/recordfile"
	"github.com/tripwire-go/twdb/internal/serialize"
	"github.com/tripwire-go/twdb/pkg/errors"
	"go.uber.org/zap"
)

// entryItem pairs a loaded Entry with the address it was read from, so it
// can be rewritten in place without re-deriving its address.
type entryItem struct {
	addr  recordfile.Address
	entry *Entry
}

// Cursor navigates one hierarchical database: the directory it's
// currently positioned in, a snapshot of that directory's entries taken
// at load time, an index into that snapshot, and the stack of names from
// the root down to the current directory.
type Cursor struct {
	db       *DB
	infoAddr recordfile.Address
	info     *ArrayInfo
	items    []entryItem
	pos      int
	path     []string
	log      *zap.SugaredLogger
}

// loadDirectory reads the ArrayInfo at infoAddr and walks its entry list.
// A failure reading the ArrayInfo itself propagates; a failure partway
// through the entry list is logged and stops the walk, leaving whatever
// entries loaded successfully visible.
func (c *Cursor) loadDirectory(infoAddr recordfile.Address) error {
	node, err := loadNode(c.db.rf, infoAddr)
	if err != nil {
		return err
	}
	info, ok := node.(*ArrayInfo)
	if !ok {
		return errUnexpectedNodeType("loadDirectory", infoAddr)
	}

	c.infoAddr = infoAddr
	c.info = info
	c.items = c.loadEntries(info.Array)
	c.pos = 0
	return nil
}

func (c *Cursor) loadEntries(head recordfile.Address) []entryItem {
	var items []entryItem
	addr := head
	for !addr.IsNull() {
		node, err := loadNode(c.db.rf, addr)
		if err != nil {
			c.log.Errorw("entry failed to deserialize, stopping directory load", "addr", addr, "error", err)
			break
		}
		entry, ok := node.(*Entry)
		if !ok {
			c.log.Errorw("unexpected node type in entry list, stopping directory load", "addr", addr)
			break
		}
		items = append(items, entryItem{addr: addr, entry: entry})
		addr = entry.Next
	}
	return items
}

// SeekToRoot repositions the cursor at the root directory.
func (c *Cursor) SeekToRoot() error {
	c.path = nil
	return c.loadDirectory(c.db.rootInfo)
}

// AtRoot reports whether the cursor is positioned at the root directory.
func (c *Cursor) AtRoot() bool {
	return len(c.path) == 0
}

// Done reports whether the cursor's position has moved past the last entry.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.items)
}

// SeekBegin positions the cursor at the first entry of the current directory.
func (c *Cursor) SeekBegin() {
	c.pos = 0
}

// Next advances the cursor to the following entry, if any.
func (c *Cursor) Next() {
	if !c.Done() {
		c.pos++
	}
}

// GetName returns the current entry's name.
func (c *Cursor) GetName() (string, error) {
	if c.Done() {
		return "", errBadCursorState("GetName", "cursor is past the last entry")
	}
	return c.items[c.pos].entry.Name, nil
}

// GetCwd returns the delimiter-joined path from the root to the current directory.
func (c *Cursor) GetCwd() string {
	delim := string(c.db.delimiter)
	return delim + strings.Join(c.path, delim)
}

// locate finds where name belongs in the current directory's sorted
// snapshot: the first position whose entry is not less than name, and
// whether that position holds an exact match.
func (c *Cursor) locate(name string) (idx int, found bool) {
	idx = upperBound(c.items, name, c.db.cmp)
	found = idx < len(c.items) && c.db.cmp.equal(c.items[idx].entry.Name, name)
	return idx, found
}

// SeekTo positions the cursor at the entry named name, reporting whether
// it was found. A miss leaves the cursor past the last entry.
func (c *Cursor) SeekTo(name string) bool {
	idx, found := c.locate(name)
	if found {
		c.pos = idx
		return true
	}
	c.pos = len(c.items)
	return false
}

// Descend moves into the current entry's child directory. The current
// entry must have one.
func (c *Cursor) Descend() error {
	if c.Done() {
		return errBadCursorState("Descend", "cursor is past the last entry")
	}
	entry := c.items[c.pos].entry
	if entry.Child.IsNull() {
		return errBadCursorState("Descend", "entry has no child directory")
	}
	name := entry.Name
	childAddr := entry.Child
	if err := c.loadDirectory(childAddr); err != nil {
		return err
	}
	c.path = append(c.path, name)
	return nil
}

// Ascend moves to the parent directory. The cursor must not already be at
// the root.
func (c *Cursor) Ascend() error {
	if c.AtRoot() {
		return errBadCursorState("Ascend", "cursor is already at the root")
	}
	parent := c.info.Parent
	if err := c.loadDirectory(parent); err != nil {
		return err
	}
	c.path = c.path[:len(c.path)-1]
	return nil
}

// CreateEntry adds name to the current directory, positioning the cursor
// on it. Creating a name that already exists is a no-op success that
// leaves the cursor on the existing entry.
func (c *Cursor) CreateEntry(name string) error {
	idx, found := c.locate(name)
	if found {
		c.pos = idx
		return nil
	}

	nextAddr := recordfile.NullAddress
	if idx < len(c.items) {
		nextAddr = c.items[idx].addr
	}

	entry := &Entry{Name: name, Data: recordfile.NullAddress, Child: recordfile.NullAddress, Next: nextAddr}
	buf, err := serialize.Marshal(entry)
	if err != nil {
		return err
	}
	newAddr, err := c.db.rf.AddItem(buf, ownerEntry)
	if err != nil {
		return err
	}

	if idx == 0 {
		c.info.Array = newAddr
		if err := rewriteNode(c.db.rf, c.infoAddr, c.info); err != nil {
			return err
		}
	} else {
		prev := c.items[idx-1]
		prev.entry.Next = newAddr
		if err := rewriteNode(c.db.rf, prev.addr, prev.entry); err != nil {
			return err
		}
	}

	c.items = append(c.items, entryItem{})
	copy(c.items[idx+1:], c.items[idx:])
	c.items[idx] = entryItem{addr: newAddr, entry: entry}
	c.pos = idx
	return nil
}

// CreateChildArray gives the current entry an (empty) child directory. The
// entry must not already have one.
func (c *Cursor) CreateChildArray() error {
	if c.Done() {
		return errBadCursorState("CreateChildArray", "cursor is past the last entry")
	}
	item := c.items[c.pos]
	if !item.entry.Child.IsNull() {
		return errBadCursorState("CreateChildArray", "entry already has a child directory")
	}

	info := &ArrayInfo{Parent: c.infoAddr, Array: recordfile.NullAddress}
	buf, err := serialize.Marshal(info)
	if err != nil {
		return err
	}
	addr, err := c.db.rf.AddItem(buf, ownerArrayInfo)
	if err != nil {
		return err
	}

	item.entry.Child = addr
	return rewriteNode(c.db.rf, item.addr, item.entry)
}

// SetData replaces the current entry's payload, deleting any existing one first.
func (c *Cursor) SetData(payload []byte) error {
	if c.Done() {
		return errBadCursorState("SetData", "cursor is past the last entry")
	}
	item := c.items[c.pos]
	if !item.entry.Data.IsNull() {
		if err := c.db.rf.RemoveItem(item.entry.Data); err != nil {
			return err
		}
	}
	addr, err := c.db.rf.AddItem(payload, ownerPayload)
	if err != nil {
		return err
	}
	item.entry.Data = addr
	return rewriteNode(c.db.rf, item.addr, item.entry)
}

// GetData returns the current entry's payload bytes, or nil if it has none.
func (c *Cursor) GetData() ([]byte, error) {
	if c.Done() {
		return nil, errBadCursorState("GetData", "cursor is past the last entry")
	}
	item := c.items[c.pos]
	if item.entry.Data.IsNull() {
		return nil, nil
	}
	return c.db.rf.GetDataForReading(item.entry.Data)
}

// RemoveData deletes the current entry's payload, if it has one.
func (c *Cursor) RemoveData() error {
	if c.Done() {
		return errBadCursorState("RemoveData", "cursor is past the last entry")
	}
	item := c.items[c.pos]
	if item.entry.Data.IsNull() {
		return nil
	}
	if err := c.db.rf.RemoveItem(item.entry.Data); err != nil {
		return err
	}
	item.entry.Data = recordfile.NullAddress
	return rewriteNode(c.db.rf, item.addr, item.entry)
}

// DeleteEntry removes the current entry from the directory. The entry
// must have no child directory.
func (c *Cursor) DeleteEntry() error {
	if c.Done() {
		return errBadCursorState("DeleteEntry", "cursor is past the last entry")
	}
	idx := c.pos
	item := c.items[idx]
	if !item.entry.Child.IsNull() {
		return errors.NewHasChildrenError(c.GetCwd(), item.entry.Name)
	}

	if idx == 0 {
		c.info.Array = item.entry.Next
		if err := rewriteNode(c.db.rf, c.infoAddr, c.info); err != nil {
			return err
		}
	} else {
		prev := c.items[idx-1]
		prev.entry.Next = item.entry.Next
		if err := rewriteNode(c.db.rf, prev.addr, prev.entry); err != nil {
			return err
		}
	}

	if !item.entry.Data.IsNull() {
		if err := c.db.rf.RemoveItem(item.entry.Data); err != nil {
			return err
		}
	}
	if err := c.db.rf.RemoveItem(item.addr); err != nil {
		return err
	}

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return nil
}

// DeleteChildArray detaches the current entry's child directory, which
// must be empty.
func (c *Cursor) DeleteChildArray() error {
	if c.Done() {
		return errBadCursorState("DeleteChildArray", "cursor is past the last entry")
	}
	item := c.items[c.pos]
	if item.entry.Child.IsNull() {
		return errBadCursorState("DeleteChildArray", "entry has no child directory")
	}

	childNode, err := loadNode(c.db.rf, item.entry.Child)
	if err != nil {
		return err
	}
	childInfo, ok := childNode.(*ArrayInfo)
	if !ok {
		return errUnexpectedNodeType("DeleteChildArray", item.entry.Child)
	}
	if !childInfo.Array.IsNull() {
		return errors.NewNotEmptyError(c.GetCwd())
	}

	if err := c.db.rf.RemoveItem(item.entry.Child); err != nil {
		return err
	}
	item.entry.Child = recordfile.NullAddress
	return rewriteNode(c.db.rf, item.addr, item.entry)
}
