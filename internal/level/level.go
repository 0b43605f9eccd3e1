// Package level maps a cumulative diary-entry count to a gamification level.
// The mapping is a pure function of the total: it is never stored, so it can
// never drift from the underlying count.
package level

import "sort"

// MaxLevel is the cap; there is no level 101.
const MaxLevel = 100

// State describes where a total lands on the level curve.
type State struct {
	Level       int  // 1..100
	Stage       int  // 1..10, one visual tier per 10 levels
	InLevel     int  // entries accumulated inside the current level
	NeedForNext int  // entries the current level costs, 0 at max
	ToNext      int  // entries remaining until the next level, 0 at max
	Max         bool // true at level 100
}

// thresholds[L] is the cumulative entry count required to reach level L.
// thresholds[1] = 0, thresholds[MaxLevel+1] is a sentinel one past the cap.
var thresholds [MaxLevel + 2]int

func init() {
	thresholds[1] = 0
	for lvl := 1; lvl <= MaxLevel; lvl++ {
		thresholds[lvl+1] = thresholds[lvl] + costForLevel(lvl)
	}
}

// costForLevel is the number of entries needed to clear the given level.
func costForLevel(lvl int) int {
	switch {
	case lvl <= 10:
		return 1
	case lvl <= 20:
		return 2
	case lvl <= 40:
		return 3
	case lvl <= 60:
		return 4
	case lvl <= 80:
		return 5
	default:
		return 6
	}
}

// FromTotal returns the level state for a cumulative entry count.
// The result is monotonically non-decreasing in total and clamps at MaxLevel.
func FromTotal(total int) State {
	if total < 0 {
		total = 0
	}

	// Largest L in [1, MaxLevel] with thresholds[L] <= total.
	lvl := sort.Search(MaxLevel, func(i int) bool {
		return thresholds[i+2] > total
	}) + 1
	if lvl > MaxLevel {
		lvl = MaxLevel
	}

	prevNeed := thresholds[lvl]
	nextNeed := prevNeed
	if lvl < MaxLevel {
		nextNeed = thresholds[lvl+1]
	}

	st := State{
		Level:       lvl,
		Stage:       (lvl-1)/10 + 1,
		InLevel:     total - prevNeed,
		NeedForNext: nextNeed - prevNeed,
		Max:         lvl == MaxLevel,
	}
	if toNext := nextNeed - total; toNext > 0 {
		st.ToNext = toNext
	}
	return st
}

// ThresholdFor returns the cumulative count at which the given level begins.
func ThresholdFor(lvl int) int {
	if lvl < 1 {
		lvl = 1
	}
	if lvl > MaxLevel {
		lvl = MaxLevel
	}
	return thresholds[lvl]
}
