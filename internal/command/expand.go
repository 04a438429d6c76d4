package command

import (
	"sort"
	"strconv"
	"strings"
)

// Expand resolves an index list such as "1,3-5" against a table of n rows.
// Components that do not parse are skipped; reversed ranges are swapped.
// The result is sorted, free of duplicates and limited to [1, n].
func Expand(spec string, n int) []int {
	seen := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		lo, hi, ok := parseComponent(part)
		if !ok {
			continue
		}
		if lo < 1 {
			lo = 1
		}
		if hi > n {
			hi = n
		}
		for i := lo; i <= hi; i++ {
			seen[i] = true
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func parseComponent(part string) (int, int, bool) {
	part = strings.TrimSpace(part)
	if part == "" {
		return 0, 0, false
	}

	bounds := strings.Split(part, "-")
	switch len(bounds) {
	case 1:
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, 0, false
		}
		return v, v, true
	case 2:
		lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return 0, 0, false
		}
		hi, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err != nil {
			return 0, 0, false
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi, true
	}
	return 0, 0, false
}
