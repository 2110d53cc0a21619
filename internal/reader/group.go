package reader

import (
	"cmp"
	"slices"
)

type group[K cmp.Ordered, T any] struct {
	Key  K
	Rows []T
}

// groupRows buckets rows by key, preserving row order within each bucket,
// and returns the buckets in ascending key order.
func groupRows[K cmp.Ordered, T any](rows []T, key func(T) K) []group[K, T] {
	index := make(map[K]int)
	var groups []group[K, T]
	for _, row := range rows {
		k := key(row)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	slices.SortFunc(groups, func(a, b group[K, T]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return groups
}
