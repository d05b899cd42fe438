package signature

import (
	"crypto/md5"
	"crypto/sha1"
	"hash"
	"hash/crc32"
)

// stdHashSignature adapts a stdlib hash.Hash (crc32, md5, sha1 all satisfy
// it) to the Signature streaming contract. new rebuilds a zero-valued
// hash.Hash so Init can truly reset rather than accumulate.
type stdHashSignature struct {
	kind   Kind
	new    func() hash.Hash
	h      hash.Hash
	digest []byte
}

func (s *stdHashSignature) Kind() Kind { return s.kind }

func (s *stdHashSignature) Init() {
	s.h = s.new()
	s.digest = nil
}

func (s *stdHashSignature) Update(data []byte) {
	s.h.Write(data)
}

func (s *stdHashSignature) Finit() {
	s.digest = s.h.Sum(nil)
}

func (s *stdHashSignature) Digest() []byte {
	return s.digest
}

func (s *stdHashSignature) Base64() string {
	return encodeBase64(s.digest)
}

func (s *stdHashSignature) Hex() string {
	return encodeHex(s.digest)
}

func newCRC32() Signature {
	s := &stdHashSignature{kind: KindCRC32, new: func() hash.Hash { return crc32.NewIEEE() }}
	s.Init()
	return s
}

func newMD5() Signature {
	s := &stdHashSignature{kind: KindMD5, new: md5.New}
	s.Init()
	return s
}

func newSHA1() Signature {
	s := &stdHashSignature{kind: KindSHA1, new: sha1.New}
	s.Init()
	return s
}
