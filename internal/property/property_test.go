package property_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwire-go/twdb/internal/archive"
	"github.com/tripwire-go/twdb/internal/property"
)

// cmpSet lets cmp.Diff compare *property.Set/*property.Vector by their
// unexported fields, since the set's own Equal-by-slot comparison isn't
// enough to catch a round trip that silently changed the set's shape.
var cmpSet = cmp.AllowUnexported(property.Set{}, property.Vector{})

func Test_Set_Get_Returns_Nil_For_An_Invalid_Slot(t *testing.T) {
	t.Parallel()

	s := property.NewSet(3)
	assert.Nil(t, s.Get(0), "Get(0) on a fresh set")
}

func Test_Set_Set_Then_Get_Round_Trips(t *testing.T) {
	t.Parallel()

	s := property.NewSet(3)
	s.Set(1, property.Int64Value(4096))

	got := s.Get(1)
	require.NotNil(t, got, "Get(1) after Set")
	assert.True(t, got.Equal(property.Int64Value(4096)), "Get(1) = %v, want Int64Value(4096)", got)
	assert.True(t, s.Valid().Contains(1), "Valid().Contains(1) after Set")
}

func Test_Set_Invalidate_Clears_A_Slot(t *testing.T) {
	t.Parallel()

	s := property.NewSet(2)
	s.Set(0, property.StringValue("owner"))
	s.Invalidate(0)

	assert.Nil(t, s.Get(0), "Get(0) after Invalidate")
	assert.False(t, s.Valid().Contains(0), "Valid().Contains(0) after Invalidate")
}

func Test_Write_Then_Read_Round_Trips_A_Mixed_Set(t *testing.T) {
	t.Parallel()

	want := property.NewSet(4)
	want.Set(0, property.Int32Value(0o755))
	want.Set(1, property.StringValue("root"))
	want.Set(2, property.BoolValue(true))
	// slot 3 left invalid.

	mem := archive.NewMemoryArchive()
	require.NoError(t, want.Write(mem), "Write")

	got := property.NewSet(0)
	require.NoError(t, got.Read(mem), "Read")

	if diff := cmp.Diff(want, got, cmpSet); diff != "" {
		t.Errorf("round-tripped set mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, got.Get(3), "slot 3 was never set")
}

func Test_Compare_Reports_Equal_When_Masked_Slots_Match(t *testing.T) {
	t.Parallel()

	a := property.NewSet(2)
	a.Set(0, property.Int64Value(10))
	a.Set(1, property.Int64Value(20))

	b := property.NewSet(2)
	b.Set(0, property.Int64Value(10))
	b.Set(1, property.Int64Value(999))

	mask := property.NewVector(2)
	mask.Set(0)

	result, diff := a.Compare(b, mask)
	assert.Equal(t, property.Equal, result, "Compare result")

	wantDiff := property.NewVector(2)
	if d := cmp.Diff(wantDiff, diff, cmpSet); d != "" {
		t.Errorf("diff vector mismatch (-want +got):\n%s", d)
	}
}

func Test_Compare_Reports_PropsUnequal_For_A_Masked_Mismatch(t *testing.T) {
	t.Parallel()

	a := property.NewSet(2)
	a.Set(0, property.Int64Value(10))
	b := property.NewSet(2)
	b.Set(0, property.Int64Value(11))

	mask := property.NewVector(2)
	mask.Set(0)

	result, diff := a.Compare(b, mask)
	assert.Equal(t, property.PropsUnequal, result, "Compare result")
	assert.True(t, diff.Contains(0), "diff should mark slot 0")
}

func Test_Compare_Reports_PropsNotAllValid_When_One_Side_Is_Unset(t *testing.T) {
	t.Parallel()

	a := property.NewSet(2)
	a.Set(0, property.Int64Value(10))
	b := property.NewSet(2) // slot 0 left invalid

	mask := property.NewVector(2)
	mask.Set(0)

	result, diff := a.Compare(b, mask)
	assert.Equal(t, property.PropsNotAllValid, result, "Compare result")
	assert.True(t, diff.Contains(0), "diff should mark slot 0")
}

func Test_NewValue_Rejects_Unknown_Kind(t *testing.T) {
	t.Parallel()

	_, err := property.NewValue(property.ValueKind("nonsense"))
	assert.Error(t, err, "NewValue with an unknown kind")
}

func Test_BytesValue_Equal_Compares_Content_Not_Identity(t *testing.T) {
	t.Parallel()

	a := property.BytesValue([]byte{1, 2, 3})
	b := property.BytesValue([]byte{1, 2, 3})
	c := property.BytesValue([]byte{1, 2, 4})

	assert.True(t, a.Equal(b), "identical byte slices should compare equal")
	assert.False(t, a.Equal(c), "different byte slices should not compare equal")
}
