// Package hierdb implements the tree of directories and entries built on
// top of the record file: a root node, one ArrayInfo per directory, and a
// singly-linked list of Entry records per directory, navigated through a
// Cursor.
package hierdb

import (
	stderrors "errors"

	"github.com/tripwire-go/twdb/internal/nametable"
	"github.com/tripwire-go/twdb/internal/recordarray"
	"github.com/tripwire-go/twdb/internal/recordfile"
	"github.com/tripwire-go/twdb/internal/serialize"
	"go.uber.org/zap"
)

const (
	ownerRoot int32 = iota + 1
	ownerArrayInfo
	ownerEntry
	ownerPayload
)

// rootAddr is where the root Root node always lives.
var rootAddr = recordfile.Address{Block: 0, Slot: 0}

// DB is the hierarchical database built over one record file. It holds the
// configuration read from (or written to) the root node and the comparator
// entry names are ordered and looked up under.
type DB struct {
	rf            *recordfile.File
	cmp           *comparator
	rootInfo      recordfile.Address
	caseSensitive bool
	delimiter     rune
	log           *zap.SugaredLogger
}

// Open loads the database rooted in rf, creating the root node and its
// (empty) root directory if the record file is new. caseSensitive and
// delimiter are only consulted on first creation; reopening an existing
// database reads them back from the stored root node.
func Open(rf *recordfile.File, caseSensitive bool, delimiter rune, log *zap.SugaredLogger) (*DB, error) {
	names := nametable.New()

	data, err := rf.GetDataForReading(rootAddr)
	if err != nil {
		if !stderrors.Is(err, recordarray.ErrBadSlot) {
			return nil, err
		}
		return create(rf, names, caseSensitive, delimiter, log)
	}

	node, err := serialize.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	root, ok := node.(*Root)
	if !ok {
		return nil, errUnexpectedNodeType("Open", rootAddr)
	}

	log.Infow("opened existing hierarchical database", "rootArrayInfo", root.RootArrayInfo)
	return &DB{
		rf:            rf,
		cmp:           newComparator(root.CaseSensitive, names),
		rootInfo:      root.RootArrayInfo,
		caseSensitive: root.CaseSensitive,
		delimiter:     root.Delimiter,
		log:           log,
	}, nil
}

// create materializes a fresh database: a Root record at (0,0) with a
// placeholder ArrayInfo address, the root ArrayInfo record at (0,1), then
// an in-place rewrite of the Root record pointing it at the ArrayInfo's
// real address now that it's known.
func create(rf *recordfile.File, names *nametable.Table, caseSensitive bool, delimiter rune, log *zap.SugaredLogger) (*DB, error) {
	root := &Root{RootArrayInfo: recordfile.NullAddress, CaseSensitive: caseSensitive, Delimiter: delimiter}
	rootBytes, err := serialize.Marshal(root)
	if err != nil {
		return nil, err
	}
	addr, err := rf.AddItem(rootBytes, ownerRoot)
	if err != nil {
		return nil, err
	}
	if addr != rootAddr {
		log.Warnw("root record landed at an unexpected address", "addr", addr)
	}

	info := &ArrayInfo{Parent: recordfile.NullAddress, Array: recordfile.NullAddress}
	infoBytes, err := serialize.Marshal(info)
	if err != nil {
		return nil, err
	}
	infoAddr, err := rf.AddItem(infoBytes, ownerArrayInfo)
	if err != nil {
		return nil, err
	}

	root.RootArrayInfo = infoAddr
	if err := rewriteNode(rf, addr, root); err != nil {
		return nil, err
	}

	log.Infow("created new hierarchical database", "rootAddr", addr, "rootArrayInfo", infoAddr)
	return &DB{
		rf:            rf,
		cmp:           newComparator(caseSensitive, names),
		rootInfo:      infoAddr,
		caseSensitive: caseSensitive,
		delimiter:     delimiter,
		log:           log,
	}, nil
}

// RootCursor returns a cursor positioned at the root directory.
func (db *DB) RootCursor() (*Cursor, error) {
	c := &Cursor{db: db, log: db.log}
	if err := c.loadDirectory(db.rootInfo); err != nil {
		return nil, err
	}
	return c, nil
}

func loadNode(rf *recordfile.File, addr recordfile.Address) (serialize.Node, error) {
	data, err := rf.GetDataForReading(addr)
	if err != nil {
		return nil, err
	}
	return serialize.Unmarshal(data)
}

func rewriteNode(rf *recordfile.File, addr recordfile.Address, n serialize.Node) error {
	buf, err := rf.GetDataForWriting(addr)
	if err != nil {
		return err
	}
	return serialize.Rewrite(buf, n)
}
