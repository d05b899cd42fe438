package property

import "github.com/tripwire-go/twdb/internal/archive"

// CompareResult classifies the outcome of comparing two property sets over
// a mask.
type CompareResult int

const (
	// Equal means every masked slot that was valid in both sets compared equal.
	Equal CompareResult = iota
	// PropsUnequal means at least one masked slot was valid in both sets but differed.
	PropsUnequal
	// PropsNotAllValid means at least one masked slot wasn't valid in one or both sets.
	PropsNotAllValid
)

// Set is an ordered array of property slots, one per possible attribute of
// a genre. A slot is either empty or holds a typed Value; Valid reports
// which slots are currently populated.
type Set struct {
	values []Value
	valid  *Vector
}

// NewSet returns an empty set with room for n property slots.
func NewSet(n int) *Set {
	return &Set{values: make([]Value, n), valid: NewVector(n)}
}

// Len returns the set's configured width.
func (s *Set) Len() int {
	return len(s.values)
}

// Valid returns a view of which slots are currently populated. The
// returned vector aliases the set's own bitset and must not be mutated by
// the caller.
func (s *Set) Valid() *Vector {
	return s.valid
}

// Get returns the value at slot i, or nil if the slot is invalid.
func (s *Set) Get(i int) Value {
	if !s.valid.Contains(i) {
		return nil
	}
	return s.values[i]
}

// Set stores value at slot i and marks it valid, overwriting any existing value.
func (s *Set) Set(i int, value Value) {
	s.values[i] = value
	s.valid.Set(i)
}

// Invalidate clears slot i.
func (s *Set) Invalidate(i int) {
	s.values[i] = nil
	s.valid.Clear(i)
}

// InvalidateAll clears every slot.
func (s *Set) InvalidateAll() {
	for i := range s.values {
		s.values[i] = nil
	}
	s.valid = NewVector(len(s.values))
}

// Compare compares s against other across every slot set in mask,
// accumulating a diff mask of slots that were unequal or not valid in both
// sets. Comparing a value against an invalid peer is reported as
// PropsNotAllValid rather than treated as an error.
func (s *Set) Compare(other *Set, mask *Vector) (CompareResult, *Vector) {
	diff := NewVector(len(s.values))
	result := Equal

	for i := 0; i < mask.Len(); i++ {
		if !mask.Contains(i) {
			continue
		}
		aValid := s.valid.Contains(i)
		bValid := other.valid.Contains(i)
		if !aValid || !bValid {
			diff.Set(i)
			if result == Equal {
				result = PropsNotAllValid
			}
			continue
		}
		if !s.values[i].Equal(other.values[i]) {
			diff.Set(i)
			result = PropsUnequal
		}
	}

	return result, diff
}

// Write emits the set's valid vector followed by each valid slot's kind tag
// and value body, in slot order.
func (s *Set) Write(a archive.Archive) error {
	if err := s.valid.Write(a); err != nil {
		return err
	}
	for i, v := range s.values {
		if !s.valid.Contains(i) {
			continue
		}
		if err := a.WriteString(string(v.Kind())); err != nil {
			return err
		}
		if err := v.Write(a); err != nil {
			return err
		}
	}
	return nil
}

// Read replaces the set's content by reading a valid vector followed by
// each valid slot's kind tag and value body.
func (s *Set) Read(a archive.Archive) error {
	valid := NewVector(0)
	if err := valid.Read(a); err != nil {
		return err
	}

	values := make([]Value, valid.Len())
	for i := 0; i < valid.Len(); i++ {
		if !valid.Contains(i) {
			continue
		}
		kindTag, err := a.ReadString()
		if err != nil {
			return err
		}
		value, err := NewValue(ValueKind(kindTag))
		if err != nil {
			return err
		}
		if err := value.Read(a); err != nil {
			return err
		}
		values[i] = value
	}

	s.valid = valid
	s.values = values
	return nil
}
