package nsga2

import (
	"math"
	"slices"

	"github.com/tommoulard/moga"
)

// rankByCrowding orders the members of one front by crowding distance
// descending, the most isolated first, so a prefix of the result is the
// diversity-preserving choice of survivors. Fronts of one or two members are
// returned as-is; boundary members always win with an infinite distance.
func rankByCrowding(front []int, scores []moga.Scores) []member {
	members := make([]member, len(front))
	for at, i := range front {
		members[at] = member{index: i}
	}

	if len(members) <= 2 {
		return members
	}

	objectives := len(scores[front[0]])

	for obj := range objectives {
		slices.SortFunc(members, func(a, b member) int {
			return compareFloat(scores[a.index][obj], scores[b.index][obj])
		})

		members[0].crowding = math.Inf(1)
		members[len(members)-1].crowding = math.Inf(1)

		lowest := scores[members[0].index][obj]
		highest := scores[members[len(members)-1].index][obj]

		delta := float64(highest - lowest)
		if delta == 0 {
			delta = 1.0
		}

		for k := 1; k < len(members)-1; k++ {
			if math.IsInf(members[k].crowding, 1) {
				continue
			}

			prev := scores[members[k-1].index][obj]
			next := scores[members[k+1].index][obj]
			members[k].crowding += math.Abs(float64(next-prev)) / delta
		}
	}

	slices.SortStableFunc(members, func(a, b member) int {
		// Descending by crowding distance.
		return compareFloat64(b.crowding, a.crowding)
	})

	return members
}

// compareFloat orders float32 values ascending with NaN sorted to the end.
func compareFloat(a, b moga.Score) int {
	return compareFloat64(float64(a), float64(b))
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case math.IsNaN(a) && !math.IsNaN(b):
		return 1
	case math.IsNaN(b) && !math.IsNaN(a):
		return -1
	default:
		return 0
	}
}
