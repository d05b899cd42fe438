package hierdb

import "sort"

// upperBound locates the first entry in items whose name is not less than
// name, under cmp, or len(items) if every entry sorts before name.
//
// The original locates this same position with a hand-rolled binary
// search over a forward iterator (upperbound.h), stepping by pointer
// arithmetic because C++ forward iterators have no direct indexing. Go
// slices already support that, so this is sort.Search over the same
// less-than test the original calls: advance while the candidate sorts
// before name, stop at the first one that doesn't.
func upperBound(items []entryItem, name string, cmp *comparator) int {
	return sort.Search(len(items), func(i int) bool {
		return !cmp.less(items[i].entry.Name, name)
	})
}
