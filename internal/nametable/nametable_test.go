package nametable_test

import (
	"testing"

	"github.com/tripwire-go/twdb/internal/nametable"
)

func Test_Intern_Returns_The_Same_Handle_For_The_Same_String(t *testing.T) {
	t.Parallel()

	tbl := nametable.New()
	a := tbl.Intern("etc")
	b := tbl.Intern("etc")
	if a != b {
		t.Errorf("Intern(etc) twice = (%d, %d), want equal handles", a, b)
	}
}

func Test_Intern_Returns_Distinct_Handles_For_Distinct_Strings(t *testing.T) {
	t.Parallel()

	tbl := nametable.New()
	a := tbl.Intern("etc")
	b := tbl.Intern("var")
	if a == b {
		t.Error("Intern(etc) and Intern(var) returned the same handle")
	}
}

func Test_Text_Recovers_The_Interned_String(t *testing.T) {
	t.Parallel()

	tbl := nametable.New()
	h := tbl.Intern("passwd")
	if got := tbl.Text(h); got != "passwd" {
		t.Errorf("Text(h) = %q, want %q", got, "passwd")
	}
}

func Test_LowerText_Folds_Case(t *testing.T) {
	t.Parallel()

	tbl := nametable.New()
	h := tbl.Intern("README")
	if got := tbl.LowerText(h); got != "readme" {
		t.Errorf("LowerText(README) = %q, want %q", got, "readme")
	}
}

func Test_LowerText_Is_Its_Own_Twin_When_Already_Lowercase(t *testing.T) {
	t.Parallel()

	tbl := nametable.New()
	h := tbl.Intern("already-lower")
	if tbl.Lower(h) != h {
		t.Error("Lower(h) for an already-lowercase string != h")
	}
	if got := tbl.LowerText(h); got != "already-lower" {
		t.Errorf("LowerText(already-lower) = %q, want unchanged", got)
	}
}

func Test_Text_Of_NullHandle_Is_Empty(t *testing.T) {
	t.Parallel()

	tbl := nametable.New()
	if got := tbl.Text(nametable.NullHandle); got != "" {
		t.Errorf("Text(NullHandle) = %q, want empty", got)
	}
}

func Test_Len_Counts_Distinct_Entries_Including_Lowercase_Twins(t *testing.T) {
	t.Parallel()

	tbl := nametable.New()
	tbl.Intern("README")
	// "README" and its lowercase twin "readme" are two distinct entries.
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (original plus lowercase twin)", tbl.Len())
	}

	tbl.Intern("readme")
	if tbl.Len() != 2 {
		t.Errorf("Len() after interning the already-created twin = %d, want 2", tbl.Len())
	}
}

func Test_Clear_Invalidates_Prior_Handles(t *testing.T) {
	t.Parallel()

	tbl := nametable.New()
	tbl.Intern("etc")
	tbl.Clear()
	if tbl.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", tbl.Len())
	}
}
