// Package recordfile is the file-wide allocator built on top of the block
// file and record arrays: it locates room for a new item in an existing
// block or grows the file by one, and hands back an opaque (block, slot)
// address callers use for every later read, write, or delete.
package recordfile

import (
	stderrors "errors"

	"github.com/tripwire-go/twdb/internal/block"
	"github.com/tripwire-go/twdb/internal/recordarray"
	"github.com/tripwire-go/twdb/pkg/errors"
	"go.uber.org/zap"
)

// Address identifies a record by the block it lives in and its slot within
// that block's record array.
type Address struct {
	Block int64
	Slot  int32
}

// NullAddress is the address that never refers to a real record.
var NullAddress = Address{Block: -1, Slot: -1}

// IsNull reports whether addr is NullAddress.
func (addr Address) IsNull() bool {
	return addr.Block < 0
}

// File is the record-level allocator over a BlockFile. It keeps no
// long-lived record-array state of its own: every access re-fetches the
// block through the block file's cache and wraps it fresh, since the cache
// is free to evict and recycle any block between calls.
type File struct {
	bf          *block.BlockFile
	blockCount  int64
	lastAddedTo int64
	log         *zap.SugaredLogger
}

// Open wraps an already-open BlockFile for record-level access.
func Open(bf *block.BlockFile, log *zap.SugaredLogger) (*File, error) {
	if bf == nil || log == nil {
		return nil, errors.NewRecordError(nil, errors.ErrorCodeInvalidInput, "record file requires a block file and logger")
	}
	return &File{bf: bf, blockCount: bf.BlockCount(), lastAddedTo: -1, log: log}, nil
}

// BlockCount returns how many blocks the underlying block file currently has.
func (f *File) BlockCount() int64 {
	return f.blockCount
}

// arrayAt fetches block i through the block file's cache and wraps it as a
// record array, formatting it first if it has never held one.
func (f *File) arrayAt(i int64) (*recordarray.Array, error) {
	blk, err := f.bf.GetBlock(i)
	if err != nil {
		return nil, err
	}
	arr := recordarray.New(blk)
	if isUnformatted(arr) {
		if err := arr.InitNew(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	if err := arr.InitExisting(); err != nil {
		return nil, err
	}
	return arr, nil
}

// isUnformatted distinguishes a block that has never been written to as a
// record array (all-zero payload: space_available and slot_count both
// read 0) from a legitimately empty but initialized one, where
// space_available reflects the block's real capacity.
func isUnformatted(arr *recordarray.Array) bool {
	return arr.SlotCount() == 0 && arr.SpaceAvailable() == 0
}

// AddItem stores data under ownerID, trying last_added_to first, then every
// other block in order, then growing the file by one block if none has
// room. It returns the address the caller must keep to read, rewrite, or
// delete the record later.
func (f *File) AddItem(data []byte, ownerID int32) (Address, error) {
	if f.lastAddedTo >= 0 {
		addr, err, tried := f.tryAdd(f.lastAddedTo, data, ownerID)
		if tried {
			if err != nil {
				return Address{}, err
			}
			return addr, nil
		}
	}

	for i := int64(0); i < f.blockCount; i++ {
		if i == f.lastAddedTo {
			continue
		}
		addr, err, tried := f.tryAdd(i, data, ownerID)
		if tried {
			if err != nil {
				return Address{}, err
			}
			return addr, nil
		}
	}

	blk, err := f.bf.CreateBlock()
	if err != nil {
		return Address{}, err
	}
	f.blockCount = f.bf.BlockCount()

	arr := recordarray.New(blk)
	if err := arr.InitNew(); err != nil {
		return Address{}, err
	}
	slot, err := arr.AddItem(data, ownerID)
	if err != nil {
		return Address{}, err
	}
	newBlockNum := blk.BlockNum()
	f.lastAddedTo = newBlockNum
	return Address{Block: newBlockNum, Slot: slot}, nil
}

// tryAdd attempts to add to block i. tried is false only when the block
// genuinely lacked space, signaling the caller should move on to the next
// candidate rather than treat it as a failure.
func (f *File) tryAdd(i int64, data []byte, ownerID int32) (addr Address, err error, tried bool) {
	arr, arrErr := f.arrayAt(i)
	if arrErr != nil {
		return Address{}, arrErr, true
	}
	slot, addErr := arr.AddItem(data, ownerID)
	if addErr == nil {
		f.lastAddedTo = i
		return Address{Block: i, Slot: slot}, nil, true
	}
	if stderrors.Is(addErr, recordarray.ErrNoSpace) {
		return Address{}, nil, false
	}
	return Address{}, addErr, true
}

// RemoveItem deletes the record at addr.
func (f *File) RemoveItem(addr Address) error {
	if err := f.validateAddr(addr); err != nil {
		return err
	}
	arr, err := f.arrayAt(addr.Block)
	if err != nil {
		return err
	}
	return arr.DeleteItem(addr.Slot)
}

// GetDataForReading returns a view of the bytes stored at addr. The view
// aliases the block file's cache and is invalidated by any later call that
// may evict the block.
func (f *File) GetDataForReading(addr Address) ([]byte, error) {
	if err := f.validateAddr(addr); err != nil {
		return nil, err
	}
	arr, err := f.arrayAt(addr.Block)
	if err != nil {
		return nil, err
	}
	return arr.GetDataForReading(addr.Slot)
}

// GetDataForWriting returns the same view as GetDataForReading but also
// marks the owning block dirty, for callers that intend to write through
// the returned slice in place.
func (f *File) GetDataForWriting(addr Address) ([]byte, error) {
	data, err := f.GetDataForReading(addr)
	if err != nil {
		return nil, err
	}
	blk, err := f.bf.GetBlock(addr.Block)
	if err != nil {
		return nil, err
	}
	blk.MarkDirty()
	return data, nil
}

func (f *File) validateAddr(addr Address) error {
	if addr.Block < 0 || addr.Block >= f.blockCount {
		return errors.NewBadAddressError("recordfile", addr.Block, addr.Slot)
	}
	return nil
}
