package timeline

import (
	"hash/fnv"
	"sort"
	"strconv"
)

// Guard colors come from the vibrant palette first, the muted fallback
// palette once that runs out, and a hash-picked repeat after both are
// exhausted.
var vibrantPalette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff",
}

var fallbackPalette = []string{
	"#9a6324", "#fffac8", "#800000", "#aaffc3",
	"#808000", "#ffd8b1", "#000075", "#808080",
}

// AssignColors maps each guard id to a display color. Ids are sorted
// before assignment so the mapping is a pure function of the id set and
// never depends on iteration order; within one session a guard keeps
// the same color as long as the guard set is stable.
func AssignColors(guardIDs []int64) map[int64]string {
	ids := make([]int64, 0, len(guardIDs))
	seen := make(map[int64]bool, len(guardIDs))
	for _, id := range guardIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	colors := make(map[int64]string, len(ids))
	for i, id := range ids {
		switch {
		case i < len(vibrantPalette):
			colors[id] = vibrantPalette[i]
		case i < len(vibrantPalette)+len(fallbackPalette):
			colors[id] = fallbackPalette[i-len(vibrantPalette)]
		default:
			colors[id] = hashedColor(id)
		}
	}
	return colors
}

func hashedColor(id int64) string {
	h := fnv.New32a()
	h.Write([]byte(strconv.FormatInt(id, 10)))
	all := len(vibrantPalette) + len(fallbackPalette)
	// Reduce in uint32 so the index stays in range on 32-bit ints.
	idx := int(h.Sum32() % uint32(all))
	if idx < len(vibrantPalette) {
		return vibrantPalette[idx]
	}
	return fallbackPalette[idx-len(vibrantPalette)]
}
