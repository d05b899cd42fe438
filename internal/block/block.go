// Package block implements the fixed-size paged block store: blocks of a
// configured size backed by a single file (or, for tests, a memory
// archive), with an LRU page cache that defers writes until a block is
// evicted or the cache is explicitly flushed.
package block

import "github.com/tripwire-go/twdb/pkg/errors"

// Null is the sentinel block number used by a cache slot that holds no
// live block.
const Null int64 = -1

// Block is one cached page: its payload bytes, its position in the backing
// file, whether it has been written to since it was last flushed, and the
// monotonic timestamp the cache's LRU policy evicts by.
//
// The original carries guard bytes immediately before and after the
// payload purely to catch buffer over/underrun in the C++ implementation.
// Go slices can't be corrupted that way, so Block keeps no extra bytes on
// disk — but checkInvariants below preserves the spirit of that guard as a
// cheap sanity assertion on the payload's length.
type Block struct {
	blockNum int64
	payload  []byte
	dirty    bool
	lastUse  uint32
}

// newBlock returns an empty cache slot not yet bound to any block number.
func newBlock(size uint32) *Block {
	return &Block{blockNum: Null, payload: make([]byte, size)}
}

// BlockNum returns the block's 0-based position in the backing file, or
// Null if this cache slot is currently unused.
func (b *Block) BlockNum() int64 {
	return b.blockNum
}

// Payload returns the block's live bytes. The returned slice aliases the
// block's backing array; callers that write through it must call
// MarkDirty, and the view is invalidated by the next cache operation that
// may evict this block.
func (b *Block) Payload() []byte {
	return b.payload
}

// MarkDirty flags the block as having unflushed writes.
func (b *Block) MarkDirty() {
	b.dirty = true
}

// Dirty reports whether the block has unflushed writes.
func (b *Block) Dirty() bool {
	return b.dirty
}

// checkInvariants asserts the block's payload hasn't changed size out from
// under it — the Go analogue of the original's guard-byte corruption check,
// run each time the block file reads a page into the cache.
func (b *Block) checkInvariants(blockSize uint32) error {
	if uint32(len(b.payload)) != blockSize {
		return errors.NewArchiveError(
			nil, errors.ErrorCodeArchiveFormat, "block payload size invariant violated",
		).WithBlockNum(b.blockNum).
			WithDetail("expectedSize", blockSize).
			WithDetail("actualSize", len(b.payload))
	}
	return nil
}
