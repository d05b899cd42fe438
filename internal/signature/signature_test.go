package signature_test

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwire-go/twdb/internal/archive"
	"github.com/tripwire-go/twdb/internal/signature"
	twerrors "github.com/tripwire-go/twdb/pkg/errors"
)

func Test_New_Rejects_Unknown_Kind(t *testing.T) {
	t.Parallel()

	_, err := signature.New(signature.Kind(99))
	require.Error(t, err, "New with unknown kind")
	assert.Equal(t, twerrors.ErrorCodeInvalidInput, twerrors.GetErrorCode(err))
}

func Test_CRC32_Matches_Stdlib(t *testing.T) {
	t.Parallel()

	data := []byte("the quick brown fox jumps over the lazy dog")
	want := crc32.ChecksumIEEE(data)

	h, err := signature.New(signature.KindCRC32)
	require.NoError(t, err, "New")
	h.Update(data)
	h.Finit()

	got := h.Digest()
	require.Len(t, got, 4, "crc32 digest length")
	gotU32 := uint32(got[0])<<24 | uint32(got[1])<<16 | uint32(got[2])<<8 | uint32(got[3])
	assert.Equal(t, want, gotU32, "crc32 digest")
}

func Test_MD5_Matches_Stdlib(t *testing.T) {
	t.Parallel()

	data := []byte("tripwire file integrity")
	want := md5.Sum(data)

	h, err := signature.New(signature.KindMD5)
	require.NoError(t, err, "New")
	h.Update(data[:10])
	h.Update(data[10:])
	h.Finit()

	assert.Equal(t, hex.EncodeToString(want[:]), h.Hex())
}

func Test_SHA1_Matches_Stdlib(t *testing.T) {
	t.Parallel()

	data := []byte("tripwire file integrity")
	want := sha1.Sum(data)

	h, err := signature.New(signature.KindSHA1)
	require.NoError(t, err, "New")
	h.Update(data)
	h.Finit()

	assert.Equal(t, hex.EncodeToString(want[:]), h.Hex())
}

func Test_Init_Resets_State_For_Reuse(t *testing.T) {
	t.Parallel()

	h, err := signature.New(signature.KindChecksum)
	require.NoError(t, err, "New")

	h.Update([]byte("first run"))
	h.Finit()
	first := append([]byte(nil), h.Digest()...)

	h.Init()
	h.Update([]byte("second run, different data"))
	h.Finit()
	second := h.Digest()
	assert.NotEqual(t, string(first), string(second), "digests of different inputs should not collide")

	h.Init()
	h.Update([]byte("first run"))
	h.Finit()
	third := h.Digest()
	assert.Equal(t, string(first), string(third), "re-running the same input after Init should reproduce the digest")
}

func Test_Checksum_Is_Order_Sensitive(t *testing.T) {
	t.Parallel()

	a, err := signature.New(signature.KindChecksum)
	require.NoError(t, err)
	a.Update([]byte("ab"))
	a.Finit()

	b, err := signature.New(signature.KindChecksum)
	require.NoError(t, err)
	b.Update([]byte("ba"))
	b.Finit()

	assert.NotEqual(t, string(a.Digest()), string(b.Digest()), "checksum should distinguish a byte transposition")
}

func Test_Equal_Rejects_Mismatched_Kinds(t *testing.T) {
	t.Parallel()

	a, err := signature.New(signature.KindMD5)
	require.NoError(t, err)
	a.Finit()
	b, err := signature.New(signature.KindSHA1)
	require.NoError(t, err)
	b.Finit()

	_, eqErr := signature.Equal(a, b)
	require.Error(t, eqErr, "Equal across kinds")
	assert.Equal(t, twerrors.ErrorCodeSigMismatch, twerrors.GetErrorCode(eqErr))
}

func Test_Equal_Compares_Digests_Of_The_Same_Kind(t *testing.T) {
	t.Parallel()

	a, err := signature.New(signature.KindCRC32)
	require.NoError(t, err)
	a.Update([]byte("same"))
	a.Finit()

	b, err := signature.New(signature.KindCRC32)
	require.NoError(t, err)
	b.Update([]byte("same"))
	b.Finit()

	c, err := signature.New(signature.KindCRC32)
	require.NoError(t, err)
	c.Update([]byte("different"))
	c.Finit()

	eq, err := signature.Equal(a, b)
	require.NoError(t, err, "Equal")
	assert.True(t, eq, "identical inputs should produce equal digests")

	neq, err := signature.Equal(a, c)
	require.NoError(t, err, "Equal")
	assert.False(t, neq, "different inputs should not produce equal digests")
}

func Test_Base64_Has_No_Padding(t *testing.T) {
	t.Parallel()

	h, err := signature.New(signature.KindMD5)
	require.NoError(t, err)
	h.Update([]byte("padding check"))
	h.Finit()

	assert.NotContains(t, h.Base64(), "=", "base64 digest should have no padding")
}

func Test_Batch_Computes_All_Kinds_In_One_Pass(t *testing.T) {
	t.Parallel()

	data := []byte("the contents of a monitored file, long enough to span a couple of reads")
	mem := archive.NewMemoryArchiveFromBytes(append([]byte(nil), data...))

	batch, err := signature.NewBatch(signature.KindCRC32, signature.KindMD5, signature.KindSHA1)
	require.NoError(t, err, "NewBatch")

	results, err := batch.Run(mem)
	require.NoError(t, err, "Run")
	require.Len(t, results, 3)

	wantCRC := crc32.ChecksumIEEE(data)
	gotCRC := results[0].Digest()
	gotCRCU32 := uint32(gotCRC[0])<<24 | uint32(gotCRC[1])<<16 | uint32(gotCRC[2])<<8 | uint32(gotCRC[3])
	assert.Equal(t, wantCRC, gotCRCU32, "batch crc32")

	wantMD5 := md5.Sum(data)
	assert.Equal(t, hex.EncodeToString(wantMD5[:]), results[1].Hex(), "batch md5")

	wantSHA1 := sha1.Sum(data)
	assert.Equal(t, hex.EncodeToString(wantSHA1[:]), results[2].Hex(), "batch sha1")
}

func Test_NewBatch_Propagates_Unknown_Kind(t *testing.T) {
	t.Parallel()

	_, err := signature.NewBatch(signature.KindMD5, signature.Kind(99))
	assert.Error(t, err, "NewBatch with a bad kind")
}
