package block

import (
	"fmt"
	"io"
	"math"

	"github.com/tripwire-go/twdb/internal/archive"
	"github.com/tripwire-go/twdb/pkg/errors"
	"go.uber.org/zap"
)

// BlockFile is the paged store every higher layer (record arrays, the
// record file, the hierarchical DB) reads and writes through. It owns
// exactly one backing archive and an LRU cache of up to N resident blocks.
type BlockFile struct {
	archive    archive.Bidirectional
	blockSize  uint32
	blockCount int64
	cache      []*Block
	clock      uint32
	log        *zap.SugaredLogger
}

// Config holds the parameters needed to open a BlockFile.
type Config struct {
	// Archive is the backing byte stream. Its length must already be a
	// multiple of BlockSize.
	Archive archive.Bidirectional

	// BlockSize is the size in bytes of every block. It is used for every
	// open, including to derive the block count of an existing archive; the
	// archive itself does not record a block size.
	BlockSize uint32

	// CacheBlocks is how many blocks the LRU cache holds resident.
	CacheBlocks int

	Logger *zap.SugaredLogger
}

// Open prepares a BlockFile over config.Archive. If the archive is empty,
// one empty block is materialized so block 0 always exists; otherwise the
// existing block count is derived from the archive's length.
func Open(config *Config) (*BlockFile, error) {
	if config == nil || config.Archive == nil || config.Logger == nil {
		return nil, errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "block file configuration is required")
	}
	if config.BlockSize == 0 {
		return nil, errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "block size must be non-zero")
	}
	if config.CacheBlocks <= 0 {
		return nil, errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "cache size must be positive")
	}

	length, err := config.Archive.Length()
	if err != nil {
		return nil, err
	}

	bf := &BlockFile{
		archive:   config.Archive,
		blockSize: config.BlockSize,
		log:       config.Logger,
		cache:     make([]*Block, config.CacheBlocks),
	}
	for i := range bf.cache {
		bf.cache[i] = newBlock(bf.blockSize)
	}

	if length == 0 {
		bf.log.Infow("opening empty backing archive, materializing block 0", "blockSize", bf.blockSize)
		if _, err := bf.CreateBlock(); err != nil {
			return nil, err
		}
		return bf, nil
	}

	if length%int64(bf.blockSize) != 0 {
		return nil, errors.NewArchiveError(
			nil, errors.ErrorCodeArchiveFormat, "archive length is not a multiple of block size",
		).WithDetail("length", length).WithDetail("blockSize", bf.blockSize)
	}

	bf.blockCount = length / int64(bf.blockSize)
	bf.log.Infow("opened existing backing archive", "blockCount", bf.blockCount, "blockSize", bf.blockSize)
	return bf, nil
}

// BlockSize returns the configured size in bytes of every block.
func (bf *BlockFile) BlockSize() uint32 {
	return bf.blockSize
}

// BlockCount returns how many blocks currently exist in the backing archive.
func (bf *BlockFile) BlockCount() int64 {
	return bf.blockCount
}

// GetBlock returns the block at index i, paging it in if it isn't already
// cached. The returned Block's Payload view is only valid until the next
// call to GetBlock or CreateBlock, which may evict it.
func (bf *BlockFile) GetBlock(i int64) (*Block, error) {
	if i < 0 || i >= bf.blockCount {
		return nil, errors.NewArchiveError(nil, errors.ErrorCodeBadAddress, "block index out of range").
			WithBlockNum(i).WithDetail("blockCount", bf.blockCount)
	}

	for _, b := range bf.cache {
		if b.blockNum == i {
			b.lastUse = bf.nextClock()
			return b, nil
		}
	}

	victim := bf.cache[0]
	for _, b := range bf.cache {
		if b.lastUse < victim.lastUse {
			victim = b
		}
	}

	if victim.dirty {
		if err := bf.flushBlock(victim); err != nil {
			return nil, err
		}
	}

	if err := bf.readBlock(i, victim.payload); err != nil {
		return nil, err
	}
	victim.blockNum = i
	victim.dirty = false
	victim.lastUse = bf.nextClock()

	if err := victim.checkInvariants(bf.blockSize); err != nil {
		return nil, err
	}
	return victim, nil
}

// nextClock returns the next value of the monotonic LRU timestamp counter,
// resetting every cached block's timestamp to 0 first if the counter would
// otherwise overflow.
func (bf *BlockFile) nextClock() uint32 {
	if bf.clock == math.MaxUint32 {
		for _, b := range bf.cache {
			b.lastUse = 0
		}
		bf.clock = 0
	}
	bf.clock++
	return bf.clock
}

// CreateBlock grows the backing archive by exactly one block (zero-filled),
// pages the new block into the cache, and returns it.
func (bf *BlockFile) CreateBlock() (*Block, error) {
	newLength := (bf.blockCount + 1) * int64(bf.blockSize)
	if err := bf.archive.Truncate(newLength); err != nil {
		return nil, err
	}
	newIndex := bf.blockCount
	bf.blockCount++

	victim := bf.cache[0]
	for _, b := range bf.cache {
		if b.lastUse < victim.lastUse {
			victim = b
		}
	}
	if victim.dirty {
		if err := bf.flushBlock(victim); err != nil {
			return nil, err
		}
	}

	clear(victim.payload)
	victim.blockNum = newIndex
	victim.dirty = false
	victim.lastUse = bf.nextClock()

	bf.log.Debugw("created block", "blockNum", newIndex, "blockCount", bf.blockCount)
	return victim, nil
}

// Flush writes back every dirty cached block.
func (bf *BlockFile) Flush() error {
	for _, b := range bf.cache {
		if b.dirty {
			if err := bf.flushBlock(b); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close flushes every dirty block, then releases the underlying archive if
// it supports being closed.
func (bf *BlockFile) Close() error {
	if err := bf.Flush(); err != nil {
		return err
	}
	if closer, ok := bf.archive.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (bf *BlockFile) flushBlock(b *Block) error {
	offset := b.blockNum * int64(bf.blockSize)
	if _, err := bf.archive.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	if err := bf.archive.WriteBlob(b.payload); err != nil {
		return err
	}
	b.dirty = false
	return nil
}

func (bf *BlockFile) readBlock(i int64, dest []byte) error {
	offset := i * int64(bf.blockSize)
	if _, err := bf.archive.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	n, err := bf.archive.ReadBlob(dest)
	if err != nil {
		return err
	}
	if n != len(dest) {
		return errors.NewArchiveError(
			nil, errors.ErrorCodeArchiveIO, fmt.Sprintf("short read paging in block %d", i),
		).WithBlockNum(i).WithOffset(offset).WithDetail("wantBytes", len(dest)).WithDetail("gotBytes", n)
	}
	return nil
}
