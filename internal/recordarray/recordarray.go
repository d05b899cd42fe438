// Package recordarray implements the per-block slot allocator: within one
// block's payload, a header and a growing index grow up from the start
// while payload bytes pack down from the end, with no padding between
// entries.
package recordarray

import (
	"encoding/binary"

	"github.com/tripwire-go/twdb/internal/block"
	"github.com/tripwire-go/twdb/pkg/errors"
)

// InvalidOwner is the sentinel owner id marking a free (deleted or never
// used) slot index.
const InvalidOwner int32 = -1

const (
	headerSize     = 8 // space_available int32 + slot_count int32
	indexEntrySize = 8 // offset_from_end int32 + owner_id int32
	// reservedMargin keeps the highest payload from growing flush against
	// the highest valid index entry.
	reservedMargin = 4
)

// Array is a view over one block's record-array layout. It holds no state
// of its own beyond the block pointer: space_available and slot_count live
// in the block's payload bytes so that InitExisting needs nothing but the
// block.
type Array struct {
	blk *block.Block
}

// New wraps a block for record-array access. Call InitNew for a block that
// has never held a record array, or InitExisting for one that already has.
func New(blk *block.Block) *Array {
	return &Array{blk: blk}
}

// InitNew zeros the header, writes the sentinel terminator at index 0, and
// recomputes space_available for an otherwise-empty block.
func (a *Array) InitNew() error {
	payload := a.blk.Payload()
	clear(payload)
	a.setSlotCount(0)
	a.setIndex(0, -1, InvalidOwner)
	a.recomputeSpaceAvailable()
	a.blk.MarkDirty()
	return nil
}

// InitExisting is a no-op: the header and index already live in the
// block's bytes and are read fresh on every call. It exists so callers can
// express "this block already has a record array" symmetrically with
// InitNew, and as a hook for a future validation pass.
func (a *Array) InitExisting() error {
	return nil
}

func (a *Array) payload() []byte {
	return a.blk.Payload()
}

func (a *Array) blockLen() int {
	return len(a.payload())
}

func (a *Array) spaceAvailable() int32 {
	return int32(binary.BigEndian.Uint32(a.payload()[0:4]))
}

func (a *Array) setSpaceAvailable(v int32) {
	binary.BigEndian.PutUint32(a.payload()[0:4], uint32(v))
}

// SlotCount returns the number of slot indices currently tracked (not
// counting the terminating sentinel).
func (a *Array) SlotCount() int32 {
	return int32(binary.BigEndian.Uint32(a.payload()[4:8]))
}

func (a *Array) setSlotCount(v int32) {
	binary.BigEndian.PutUint32(a.payload()[4:8], uint32(v))
}

// SpaceAvailable returns how many bytes of payload can still be added to
// this block without growing it.
func (a *Array) SpaceAvailable() int32 {
	return a.spaceAvailable()
}

func (a *Array) indexOffset(slot int32) int {
	return headerSize + int(slot)*indexEntrySize
}

func (a *Array) index(slot int32) (offset int32, owner int32) {
	off := a.indexOffset(slot)
	buf := a.payload()
	return int32(binary.BigEndian.Uint32(buf[off : off+4])),
		int32(binary.BigEndian.Uint32(buf[off+4 : off+8]))
}

func (a *Array) setIndex(slot int32, offset int32, owner int32) {
	off := a.indexOffset(slot)
	buf := a.payload()
	binary.BigEndian.PutUint32(buf[off:off+4], uint32(offset))
	binary.BigEndian.PutUint32(buf[off+4:off+8], uint32(owner))
}

// offsetBefore returns the cumulative offset-from-end boundary immediately
// below slot, 0 for slot 0.
func (a *Array) offsetBefore(slot int32) int32 {
	if slot == 0 {
		return 0
	}
	off, _ := a.index(slot - 1)
	return off
}

func (a *Array) topOffset() int32 {
	count := a.SlotCount()
	if count == 0 {
		return 0
	}
	off, _ := a.index(count - 1)
	return off
}

// recomputeSpaceAvailable derives space_available from the block size,
// header, index array size, and the highest used payload offset, per the
// formula the layout is specified against, clamped to 0.
func (a *Array) recomputeSpaceAvailable() {
	count := a.SlotCount()
	used := headerSize + int32(count+1)*indexEntrySize + a.topOffset() + reservedMargin
	available := int32(a.blockLen()) - used
	if available < 0 {
		available = 0
	}
	a.setSpaceAvailable(available)
}

// IsValid reports whether slot is a populated (owner != InvalidOwner) slot
// within range.
func (a *Array) IsValid(slot int32) bool {
	if slot < 0 || slot >= a.SlotCount() {
		return false
	}
	_, owner := a.index(slot)
	return owner != InvalidOwner
}

// ErrNoSpace is returned by AddItem when size exceeds the block's current
// space_available. The record file catches it to try the next block or grow
// the file, and returns it only when a freshly created block cannot hold the
// item either.
var ErrNoSpace = errors.NewRecordError(nil, errors.ErrorCodeOutOfSpace, "block has insufficient space for item").
	WithOperation("AddItem")

// AddItem stores bytes under ownerID, returning the slot it was assigned.
// It reuses the lowest free (InvalidOwner) slot if one exists, otherwise
// appends a new slot.
func (a *Array) AddItem(data []byte, ownerID int32) (int32, error) {
	size := int32(len(data))
	if size > a.SpaceAvailable() {
		return 0, ErrNoSpace
	}

	slot := a.findFreeSlot()
	if slot == a.SlotCount() {
		return a.appendSlot(data, ownerID)
	}
	return a.fillSlot(slot, data, ownerID)
}

// findFreeSlot returns the lowest slot whose owner is InvalidOwner, or
// SlotCount() if every existing slot is in use.
func (a *Array) findFreeSlot() int32 {
	count := a.SlotCount()
	for i := int32(0); i < count; i++ {
		if _, owner := a.index(i); owner == InvalidOwner {
			return i
		}
	}
	return count
}

func (a *Array) appendSlot(data []byte, ownerID int32) (int32, error) {
	size := int32(len(data))
	slot := a.SlotCount()
	top := a.topOffset()
	newTop := top + size

	payload := a.payload()
	dstEnd := len(payload) - int(top)
	dstStart := len(payload) - int(newTop)
	copy(payload[dstStart:dstEnd], data)

	a.setIndex(slot, newTop, ownerID)
	a.setSlotCount(slot + 1)
	a.setIndex(slot+1, -1, InvalidOwner)
	a.recomputeSpaceAvailable()
	a.blk.MarkDirty()
	return slot, nil
}

func (a *Array) fillSlot(slot int32, data []byte, ownerID int32) (int32, error) {
	size := int32(len(data))
	oldTop := a.topOffset()
	oldBoundary := a.offsetBefore(slot) // == current offset[slot], a zero-size hole
	newBoundary := oldBoundary + size

	payload := a.payload()
	blockLen := len(payload)

	// Shift every byte belonging to slots above `slot` toward the header
	// by size, to make room for this slot's growth from 0 to size bytes.
	regionStart := blockLen - int(oldTop)
	regionEnd := blockLen - int(oldBoundary)
	if regionEnd > regionStart {
		copy(payload[regionStart-int(size):regionEnd-int(size)], payload[regionStart:regionEnd])
	}

	// Write the new data into the space vacated just below the old boundary.
	copy(payload[blockLen-int(newBoundary):blockLen-int(oldBoundary)], data)

	a.setIndex(slot, newBoundary, ownerID)
	for j := slot + 1; j < a.SlotCount(); j++ {
		off, owner := a.index(j)
		a.setIndex(j, off+size, owner)
	}

	a.recomputeSpaceAvailable()
	a.blk.MarkDirty()
	return slot, nil
}

// ErrBadSlot is returned by DeleteItem and GetDataForReading when slot
// doesn't currently hold a valid record.
var ErrBadSlot = errors.NewRecordError(nil, errors.ErrorCodeBadAddress, "slot does not hold a valid record")

// DeleteItem invalidates slot, compacting the payload bytes above it and
// trimming the slot index if slot was the highest in use.
func (a *Array) DeleteItem(slot int32) error {
	if !a.IsValid(slot) {
		return ErrBadSlot
	}

	offset, _ := a.index(slot)
	prevOffset := a.offsetBefore(slot)
	top := a.topOffset()

	distToShift := offset - prevOffset
	sizeToShift := top - offset

	payload := a.payload()
	blockLen := len(payload)
	if sizeToShift > 0 {
		srcStart := blockLen - int(top)
		srcEnd := blockLen - int(offset)
		copy(payload[srcStart+int(distToShift):srcEnd+int(distToShift)], payload[srcStart:srcEnd])
	}

	a.setIndex(slot, prevOffset, InvalidOwner)
	for j := slot + 1; j < a.SlotCount(); j++ {
		off, owner := a.index(j)
		a.setIndex(j, off-distToShift, owner)
	}

	a.trimTrailingInvalid()
	a.recomputeSpaceAvailable()
	a.blk.MarkDirty()
	return nil
}

// trimTrailingInvalid shrinks slot_count while the highest slot is
// InvalidOwner, rewriting the sentinel terminator to follow the new
// highest valid slot.
func (a *Array) trimTrailingInvalid() {
	count := a.SlotCount()
	for count > 0 {
		_, owner := a.index(count - 1)
		if owner != InvalidOwner {
			break
		}
		count--
	}
	if count != a.SlotCount() {
		a.setSlotCount(count)
		a.setIndex(count, -1, InvalidOwner)
	}
}

// GetDataForReading returns a view of slot's live bytes. The view aliases
// the block's payload and is invalidated by any subsequent block-file
// operation that may evict the block.
func (a *Array) GetDataForReading(slot int32) ([]byte, error) {
	if !a.IsValid(slot) {
		return nil, ErrBadSlot
	}
	offset, _ := a.index(slot)
	prevOffset := a.offsetBefore(slot)
	payload := a.payload()
	blockLen := len(payload)
	return payload[blockLen-int(offset) : blockLen-int(prevOffset)], nil
}
