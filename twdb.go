// Package twdb is the top-level facade over the paged hierarchical
// database: it wires the archive, block file, record file, and
// hierarchical tree into a single Database, and exposes the signature
// engine for computing a monitored file's digests independently of the
// database file itself.
package twdb

import (
	"os"
	"sync/atomic"

	"github.com/tripwire-go/twdb/internal/archive"
	"github.com/tripwire-go/twdb/internal/block"
	"github.com/tripwire-go/twdb/internal/hierdb"
	"github.com/tripwire-go/twdb/internal/property"
	"github.com/tripwire-go/twdb/internal/recordfile"
	"github.com/tripwire-go/twdb/internal/signature"
	"github.com/tripwire-go/twdb/pkg/errors"
	"github.com/tripwire-go/twdb/pkg/filesys"
	"github.com/tripwire-go/twdb/pkg/logger"
	"github.com/tripwire-go/twdb/pkg/options"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrDatabaseClosed is returned by every Database method once Close has
// been called, whether or not that Close succeeded.
var ErrDatabaseClosed = errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "operation failed: cannot access closed database")

// Cursor navigates a Database's directory tree. See internal/hierdb.Cursor
// for the full method set.
type Cursor = hierdb.Cursor

// Address identifies a stored record by block and slot.
type Address = recordfile.Address

// PropertySet is the typed attribute vector callers store as an entry's payload.
type PropertySet = property.Set

// SignatureKind selects one of the supported digest algorithms.
type SignatureKind = signature.Kind

// Signature is one computed digest, in whichever algorithm produced it.
type Signature = signature.Signature

// The supported signature kinds, re-exported for callers that don't import
// internal/signature directly.
const (
	SigChecksum = signature.KindChecksum
	SigCRC32    = signature.KindCRC32
	SigMD5      = signature.KindMD5
	SigSHA1     = signature.KindSHA1
	SigHAVAL    = signature.KindHAVAL
)

// Database is the paged hierarchical store every entry and its attributes
// live in. It owns exactly one backing file.
type Database struct {
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool

	archive archive.Bidirectional
	blocks  *block.BlockFile
	records *recordfile.File
	tree    *hierdb.DB
}

// Open opens (or creates) the database at the path given via options,
// applying opts over the package defaults.
func Open(opts ...options.OptionFunc) (*Database, error) {
	cfg := &options.Options{}
	options.WithDefaultOptions()(cfg)
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Path == "" {
		return nil, errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "database path is required")
	}

	log := logger.New("twdb")

	file, err := openBackingFile(cfg)
	if err != nil {
		return nil, errors.ClassifyBlockFileOpenError(err, cfg.Path)
	}

	arc := archive.NewFileArchive(file, cfg.Path)

	blocks, err := block.Open(&block.Config{
		Archive:     arc,
		BlockSize:   cfg.BlockSize,
		CacheBlocks: cfg.CacheBlocks,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}

	records, err := recordfile.Open(blocks, log)
	if err != nil {
		return nil, err
	}

	tree, err := hierdb.Open(records, cfg.CaseSensitive, cfg.PathDelimiter, log)
	if err != nil {
		return nil, err
	}

	log.Infow("database opened", "path", cfg.Path, "blockSize", cfg.BlockSize, "cacheBlocks", cfg.CacheBlocks)
	return &Database{
		options: cfg,
		log:     log,
		archive: arc,
		blocks:  blocks,
		records: records,
		tree:    tree,
	}, nil
}

func openBackingFile(cfg *options.Options) (*os.File, error) {
	if cfg.TruncateOnOpen {
		return filesys.CreateFile(cfg.Path, true)
	}

	exists, err := filesys.Exists(cfg.Path)
	if err != nil {
		return nil, err
	}
	if exists {
		return filesys.OpenFile(cfg.Path)
	}
	return filesys.CreateFile(cfg.Path, false)
}

// RootCursor returns a cursor positioned at the database's root directory.
func (db *Database) RootCursor() (*Cursor, error) {
	if db.closed.Load() {
		return nil, ErrDatabaseClosed
	}
	return db.tree.RootCursor()
}

// Flush writes back every dirty cached block without closing the database.
func (db *Database) Flush() error {
	if db.closed.Load() {
		return ErrDatabaseClosed
	}
	return db.blocks.Flush()
}

// Close flushes and releases the database's backing file. Calling Close
// more than once returns ErrDatabaseClosed.
func (db *Database) Close() error {
	if !db.closed.CompareAndSwap(false, true) {
		return ErrDatabaseClosed
	}

	var err error
	err = multierr.Append(err, db.blocks.Flush())
	err = multierr.Append(err, db.blocks.Close())
	if err != nil {
		db.log.Errorw("database close encountered errors", "error", err)
	}
	return err
}

// ComputeFileSignatures opens the file at path and runs one streaming pass
// over it computing every requested digest kind, in the order given. This
// operates on an arbitrary monitored file, independent of any open
// Database.
func ComputeFileSignatures(path string, kinds ...SignatureKind) ([]Signature, error) {
	file, err := filesys.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	arc := archive.NewFileArchive(file, path)
	batch, err := signature.NewBatch(kinds...)
	if err != nil {
		return nil, err
	}
	return batch.Run(arc)
}

// NewPropertySet returns an empty property set with room for n attribute slots.
func NewPropertySet(n int) *PropertySet {
	return property.NewSet(n)
}
