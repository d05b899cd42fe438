package hierdb

import "github.com/tripwire-go/twdb/internal/nametable"

// comparator orders entry names per the database's configured
// case-sensitivity. Case-insensitive comparisons go through the name
// table so repeated comparisons of the same name reuse its cached
// lowercase form instead of folding the case every time.
type comparator struct {
	caseSensitive bool
	names         *nametable.Table
}

func newComparator(caseSensitive bool, names *nametable.Table) *comparator {
	return &comparator{caseSensitive: caseSensitive, names: names}
}

func (c *comparator) key(s string) string {
	if c.caseSensitive {
		return s
	}
	return c.names.LowerText(c.names.Intern(s))
}

func (c *comparator) less(a, b string) bool {
	return c.key(a) < c.key(b)
}

func (c *comparator) equal(a, b string) bool {
	return c.key(a) == c.key(b)
}
