package signature

import "encoding/binary"

// checksumSignature is the simplest of the five hashers: a 64-bit rolling
// sum with a left rotation applied before each byte is folded in, so that
// byte order within the stream still affects the result (a plain additive
// sum would not catch a transposition).
type checksumSignature struct {
	acc    uint64
	digest []byte
}

func newChecksum() Signature {
	c := &checksumSignature{}
	c.Init()
	return c
}

func (c *checksumSignature) Kind() Kind { return KindChecksum }

func (c *checksumSignature) Init() {
	c.acc = 0
	c.digest = nil
}

func (c *checksumSignature) Update(data []byte) {
	for _, b := range data {
		c.acc = (c.acc<<8 | c.acc>>56) + uint64(b)
	}
}

func (c *checksumSignature) Finit() {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, c.acc)
	c.digest = buf
}

func (c *checksumSignature) Digest() []byte {
	return c.digest
}

func (c *checksumSignature) Base64() string {
	return encodeBase64(c.digest)
}

func (c *checksumSignature) Hex() string {
	return encodeHex(c.digest)
}
