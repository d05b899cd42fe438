package signature

import "github.com/tripwire-go/twdb/internal/archive"

// batchReadBlockSize is the chunk size the batch driver reads at a time.
// The spec suggests matching the database's own block size so a baseline
// run and a signature-only run touch the backing file the same way.
const batchReadBlockSize = 4096

// Batch computes N signatures in a single sequential pass over a
// bidirectional archive. Every hasher is Init'd before the read loop and
// Finit'd after, so a caller gets one read of the file no matter how many
// algorithms they asked for.
type Batch struct {
	hashers []Signature
}

// NewBatch builds a batch driver that computes the given kinds, in order.
func NewBatch(kinds ...Kind) (*Batch, error) {
	hashers := make([]Signature, 0, len(kinds))
	for _, k := range kinds {
		h, err := New(k)
		if err != nil {
			return nil, err
		}
		hashers = append(hashers, h)
	}
	return &Batch{hashers: hashers}, nil
}

// Run seeks a to the start, then streams its entire content through every
// registered hasher in fixed-size blocks. It returns the finalized hashers
// in the same order they were registered.
func (b *Batch) Run(a archive.Bidirectional) ([]Signature, error) {
	if _, err := a.Seek(0, 0); err != nil {
		return nil, err
	}

	for _, h := range b.hashers {
		h.Init()
	}

	buf := make([]byte, batchReadBlockSize)
	for {
		n, err := a.ReadBlob(buf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		for _, h := range b.hashers {
			h.Update(buf[:n])
		}
		if n < len(buf) {
			break
		}
	}

	for _, h := range b.hashers {
		h.Finit()
	}

	return b.hashers, nil
}
