package signature

import (
	"bytes"
	"testing"
)

// HAVAL has no ecosystem package and no reference vector available without
// running the toolchain, so these only check the shape of the contract
// rather than bit-exact output.

func Test_HAVAL_Digest_Is_128_Bits(t *testing.T) {
	t.Parallel()

	h := newHAVAL()
	h.Update([]byte("the quick brown fox"))
	h.Finit()

	if got := len(h.Digest()); got != 16 {
		t.Errorf("len(Digest()) = %d, want 16", got)
	}
}

func Test_HAVAL_Init_Resets_State_For_Reuse(t *testing.T) {
	t.Parallel()

	h := newHAVAL()
	h.Update([]byte("first message"))
	h.Finit()
	first := append([]byte(nil), h.Digest()...)

	h.Init()
	h.Update([]byte("first message"))
	h.Finit()
	second := h.Digest()

	if !bytes.Equal(first, second) {
		t.Errorf("digest after Init+replay = %x, want %x (same input)", second, first)
	}
}

func Test_HAVAL_Different_Inputs_Produce_Different_Digests(t *testing.T) {
	t.Parallel()

	a := newHAVAL()
	a.Update([]byte("input one"))
	a.Finit()

	b := newHAVAL()
	b.Update([]byte("input two"))
	b.Finit()

	if bytes.Equal(a.Digest(), b.Digest()) {
		t.Error("distinct inputs produced the same HAVAL digest")
	}
}

func Test_HAVAL_Update_Across_Multiple_Calls_Matches_One_Call(t *testing.T) {
	t.Parallel()

	whole := newHAVAL()
	whole.Update([]byte("split across several Update calls"))
	whole.Finit()

	split := newHAVAL()
	split.Update([]byte("split across "))
	split.Update([]byte("several Update"))
	split.Update([]byte(" calls"))
	split.Finit()

	if !bytes.Equal(whole.Digest(), split.Digest()) {
		t.Error("chunked Update calls produced a different digest than one whole Update")
	}
}

func Test_HAVAL_Empty_Input_Produces_A_Digest(t *testing.T) {
	t.Parallel()

	h := newHAVAL()
	h.Finit()

	if got := len(h.Digest()); got != 16 {
		t.Errorf("len(Digest()) for empty input = %d, want 16", got)
	}
}
