package timeline

import "sort"

// LaneSlot places one shift inside its day column: the renderer divides
// the column width evenly by LaneCount and offsets the block by Lane.
type LaneSlot struct {
	ShiftID   int64 `json:"shiftID"`
	Component int   `json:"component"`
	Lane      int   `json:"lane"`
	LaneCount int   `json:"laneCount"`
}

// AssignLanes partitions one day's clamped intervals into
// overlap-connected components and packs each component into the
// minimum number of parallel lanes. Two shifts in the same lane never
// overlap, and a component's lane count equals its maximum number of
// simultaneously running shifts.
func AssignLanes(items []TimedShift) []LaneSlot {
	n := len(items)
	if n == 0 {
		return []LaneSlot{}
	}

	// Overlap graph. O(n²) pairwise checks are fine: n is one day's
	// shift count for a single property.
	adjacent := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if items[i].Interval.Overlaps(items[j].Interval) {
				adjacent[i] = append(adjacent[i], j)
				adjacent[j] = append(adjacent[j], i)
			}
		}
	}

	// Connected components via BFS.
	componentOf := make([]int, n)
	for i := range componentOf {
		componentOf[i] = -1
	}
	components := make([][]int, 0)
	for i := 0; i < n; i++ {
		if componentOf[i] != -1 {
			continue
		}
		id := len(components)
		member := []int{}
		queue := []int{i}
		componentOf[i] = id
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			member = append(member, cur)
			for _, next := range adjacent[cur] {
				if componentOf[next] == -1 {
					componentOf[next] = id
					queue = append(queue, next)
				}
			}
		}
		components = append(components, member)
	}

	slots := make([]LaneSlot, 0, n)
	for id, member := range components {
		// Greedy earliest-free-lane scan over (start, end) order.
		sort.Slice(member, func(a, b int) bool {
			ia, ib := items[member[a]].Interval, items[member[b]].Interval
			if !ia.Start.Equal(ib.Start) {
				return ia.Start.Before(ib.Start)
			}
			return ia.End.Before(ib.End)
		})

		laneEnds := make([]int, 0) // indexes into items, one per lane
		laneOf := make(map[int]int, len(member))
		for _, idx := range member {
			iv := items[idx].Interval
			assigned := -1
			for lane, endIdx := range laneEnds {
				if !items[endIdx].Interval.End.After(iv.Start) {
					assigned = lane
					break
				}
			}
			if assigned == -1 {
				assigned = len(laneEnds)
				laneEnds = append(laneEnds, idx)
			} else {
				laneEnds[assigned] = idx
			}
			laneOf[idx] = assigned
		}

		for _, idx := range member {
			slots = append(slots, LaneSlot{
				ShiftID:   items[idx].Shift.ID,
				Component: id,
				Lane:      laneOf[idx],
				LaneCount: len(laneEnds),
			})
		}
	}

	return slots
}
