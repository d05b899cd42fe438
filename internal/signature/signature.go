// Package signature implements the streaming hash contract used throughout
// the database: init, update any number of times, finit, then read a
// fixed-width digest. Five algorithms are supported (Checksum, CRC32, MD5,
// SHA-1, HAVAL), each renderable as base64 (legacy alphabet, no padding) or
// lowercase hex, plus a batch driver that runs all of a caller's chosen
// hashers over a single pass of a bidirectional archive.
package signature

import "github.com/tripwire-go/twdb/pkg/errors"

// Kind identifies which algorithm a Signature computes. Persisted on disk
// as the stable string returned by Kind.String, never as this numeric value.
type Kind int

const (
	KindChecksum Kind = iota
	KindCRC32
	KindMD5
	KindSHA1
	KindHAVAL
)

// String returns the on-disk type tag for k.
func (k Kind) String() string {
	switch k {
	case KindChecksum:
		return "checksum"
	case KindCRC32:
		return "crc32"
	case KindMD5:
		return "md5"
	case KindSHA1:
		return "sha1"
	case KindHAVAL:
		return "haval"
	default:
		return "unknown"
	}
}

// DigestBits returns the fixed output width of k in bits.
func (k Kind) DigestBits() int {
	switch k {
	case KindChecksum:
		return 64
	case KindCRC32:
		return 32
	case KindMD5:
		return 128
	case KindSHA1:
		return 160
	case KindHAVAL:
		return 128
	default:
		return 0
	}
}

// Signature is a streaming hasher. Init resets all internal state and may be
// called again after Finit to reuse the hasher for a new input. Update may
// be called any number of times, including with zero-length slices, between
// Init and Finit. Calling Update after Finit without an intervening Init is
// undefined.
type Signature interface {
	Kind() Kind
	Init()
	Update(data []byte)
	Finit()
	Digest() []byte

	// Base64 renders the digest using the legacy alphabet A-Za-z0-9+/ with
	// padding suppressed. Valid only after Finit.
	Base64() string

	// Hex renders the digest as lowercase hex, two characters per byte, no
	// separators. Valid only after Finit.
	Hex() string
}

// New constructs a fresh, Init'd Signature of the given kind.
func New(kind Kind) (Signature, error) {
	switch kind {
	case KindChecksum:
		return newChecksum(), nil
	case KindCRC32:
		return newCRC32(), nil
	case KindMD5:
		return newMD5(), nil
	case KindSHA1:
		return newSHA1(), nil
	case KindHAVAL:
		return newHAVAL(), nil
	default:
		return nil, errors.NewArchiveError(nil, errors.ErrorCodeInvalidInput, "unknown signature kind").
			WithDetail("kind", int(kind))
	}
}

// Equal reports whether a and b hold equal digests of the same Kind. Per
// spec, comparing signatures of different types is a SigMismatch, not a
// panic or a silent false.
func Equal(a, b Signature) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, errors.NewArchiveError(
			nil, errors.ErrorCodeSigMismatch, "cannot compare signatures of different types",
		).WithDetail("left", a.Kind().String()).WithDetail("right", b.Kind().String())
	}
	da, db := a.Digest(), b.Digest()
	if len(da) != len(db) {
		return false, nil
	}
	for i := range da {
		if da[i] != db[i] {
			return false, nil
		}
	}
	return true, nil
}

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// encodeBase64 renders digest using the legacy tripwire alphabet, bit-packed
// big-endian with padding characters suppressed (the final partial group, if
// any, is emitted short rather than padded with '=').
func encodeBase64(digest []byte) string {
	var out []byte
	var bitBuf uint32
	var bitCount int

	for _, b := range digest {
		bitBuf = (bitBuf << 8) | uint32(b)
		bitCount += 8
		for bitCount >= 6 {
			bitCount -= 6
			idx := (bitBuf >> uint(bitCount)) & 0x3F
			out = append(out, base64Alphabet[idx])
		}
	}
	if bitCount > 0 {
		idx := (bitBuf << uint(6-bitCount)) & 0x3F
		out = append(out, base64Alphabet[idx])
	}
	return string(out)
}

const hexAlphabet = "0123456789abcdef"

// encodeHex renders digest as lowercase hex, two characters per byte.
func encodeHex(digest []byte) string {
	out := make([]byte, len(digest)*2)
	for i, b := range digest {
		out[i*2] = hexAlphabet[b>>4]
		out[i*2+1] = hexAlphabet[b&0x0F]
	}
	return string(out)
}
