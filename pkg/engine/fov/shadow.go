package fov

import "slices"

// shadow is the slope range an occluder covers within one octant, with 0 the
// octant's axis and 1 its diagonal.
type shadow struct {
	start, end float64
}

// contains reports whether other lies entirely inside s
func (s shadow) contains(other shadow) bool {
	return s.start <= other.start && s.end >= other.end
}

// projectTile returns the slope range covered by the cell at (row, col) of an octant
func projectTile(row, col int) shadow {
	return shadow{
		start: float64(col) / float64(row+2),
		end:   float64(col+1) / float64(row+1),
	}
}

// shadowLine is the set of shadows cast so far in one octant, sorted by start.
// Stored shadows never overlap or touch.
type shadowLine struct {
	shadows []shadow
}

func (l *shadowLine) reset() {
	l.shadows = l.shadows[:0]
}

func (l *shadowLine) isInShadow(projection shadow) bool {
	for _, s := range l.shadows {
		if s.contains(projection) {
			return true
		}
	}
	return false
}

// add merges s into the line and reports whether the whole octant is now shadowed
func (l *shadowLine) add(s shadow) bool {
	i := 0
	for i < len(l.shadows) && l.shadows[i].end < s.start {
		i++
	}

	merged := s
	j := i
	for j < len(l.shadows) && l.shadows[j].start <= merged.end {
		merged.start = min(merged.start, l.shadows[j].start)
		merged.end = max(merged.end, l.shadows[j].end)
		j++
	}

	l.shadows = slices.Replace(l.shadows, i, j, merged)

	return l.isFull()
}

func (l *shadowLine) isFull() bool {
	return len(l.shadows) == 1 && l.shadows[0].start == 0 && l.shadows[0].end == 1
}
