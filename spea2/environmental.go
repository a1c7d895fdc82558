package spea2

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/tommoulard/moga"
)

// environmentalSelection shrinks the archive down to at most archiveSize
// members. Non-dominated members survive preferentially; when they overflow
// the archive, the most crowded ones are removed one by one, and when they
// underfill it, dominated members with the best density-augmented fitness
// pad the rest.
func (o *Optimizer[S]) environmentalSelection() error {
	m := len(o.archive)

	strength := make([]int, m)
	dominated := make([][]int, m)

	// Strength S(i): how many archive members i dominates.
	for i := range m {
		for j := i + 1; j < m; j++ {
			ord, err := moga.Dominance(o.archiveScores[i], o.archiveScores[j])
			if err != nil {
				return err
			}

			switch ord {
			case moga.Dominates:
				strength[i]++
				dominated[i] = append(dominated[i], j)
			case moga.DominatedBy:
				strength[j]++
				dominated[j] = append(dominated[j], i)
			}
		}
	}

	// Raw fitness R(i): sum of the strengths of everything dominating i.
	raw := make([]int, m)

	for i := range m {
		for _, j := range dominated[i] {
			raw[j] += strength[i]
		}
	}

	var nonDominated []int

	for i, r := range raw {
		if r == 0 {
			nonDominated = append(nonDominated, i)
		}
	}

	var kept []int

	if len(nonDominated) > o.archiveSize {
		kept = truncateByNearestNeighbor(nonDominated, o.archiveScores, o.archiveSize)
	} else {
		kept = fillByDensity(raw, o.archiveScores, o.archiveSize)
	}

	archive := make([]S, len(kept))
	scores := make([]moga.Scores, len(kept))

	for at, i := range kept {
		archive[at] = o.archive[i]
		scores[at] = o.archiveScores[i]
	}

	o.archive = archive
	o.archiveScores = scores

	return nil
}

// truncateByNearestNeighbor removes non-dominated members one at a time
// until exactly size remain. Each round removes the member whose sorted
// distance list is lexicographically smallest: nearest neighbor first, then
// second-nearest, and so on. The surviving members keep their archive order.
func truncateByNearestNeighbor(members []int, scores []moga.Scores, size int) []int {
	n := len(members)

	vectors := make([][]float64, n)
	for i := range n {
		vectors[i] = widen(scores[members[i]])
	}

	// Each member's squared distances to every other member, sorted
	// ascending. The owner index refers to a position within members, not
	// the archive.
	lists := make([][]neighbor, n)

	for i := range n {
		lists[i] = make([]neighbor, 0, n-1)

		for j := range n {
			if j == i {
				continue
			}

			d := floats.Distance(vectors[i], vectors[j], 2)

			lists[i] = append(lists[i], neighbor{
				distance: d * d,
				owner:    j,
			})
		}

		sortNeighbors(lists[i])
	}

	alive := make([]bool, n)
	for i := range alive {
		alive[i] = true
	}

	for remaining := n; remaining > size; remaining-- {
		victim := -1

		for i := range n {
			if !alive[i] {
				continue
			}

			if victim < 0 || lexicographicallyLess(lists[i], lists[victim]) {
				victim = i
			}
		}

		alive[victim] = false

		// Drop the victim from every surviving distance list; removal from a
		// sorted list keeps it sorted, so the tie-breaking order stays exact.
		for i := range n {
			if !alive[i] {
				continue
			}

			lists[i] = slices.DeleteFunc(lists[i], func(nb neighbor) bool {
				return nb.owner == victim
			})
		}
	}

	var kept []int

	for i, keep := range alive {
		if keep {
			kept = append(kept, members[i])
		}
	}

	return kept
}

type neighbor struct {
	distance float64
	owner    int
}

func sortNeighbors(list []neighbor) {
	slices.SortFunc(list, func(a, b neighbor) int {
		switch {
		case a.distance < b.distance:
			return -1
		case a.distance > b.distance:
			return 1
		default:
			return a.owner - b.owner
		}
	})
}

// lexicographicallyLess compares two sorted distance lists element by
// element: whichever has the nearer k-th neighbor on the first differing
// position is smaller.
func lexicographicallyLess(a, b []neighbor) bool {
	for k := range min(len(a), len(b)) {
		if a[k].distance != b[k].distance {
			return a[k].distance < b[k].distance
		}
	}

	return false
}

// fillByDensity ranks the whole archive by raw fitness augmented with the
// k-th nearest-neighbor density term D(i) = 1/(d_k(i) + 2), k = floor(sqrt(M)),
// and keeps the first size members in ascending fitness order.
func fillByDensity(raw []int, scores []moga.Scores, size int) []int {
	m := len(raw)

	k := int(math.Sqrt(float64(m)))
	if k < 1 {
		k = 1
	}

	vectors := make([][]float64, m)
	for i := range m {
		vectors[i] = widen(scores[i])
	}

	fitness := make([]float64, m)

	for i := range m {
		distances := make([]float64, 0, m-1)

		for j := range m {
			if j != i {
				distances = append(distances, floats.Distance(vectors[i], vectors[j], 2))
			}
		}

		slices.Sort(distances)

		kth := 0.0
		if len(distances) > 0 {
			kth = distances[min(k, len(distances))-1]
		}

		fitness[i] = float64(raw[i]) + 1/(kth+2)
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case fitness[a] < fitness[b]:
			return -1
		case fitness[a] > fitness[b]:
			return 1
		default:
			return 0
		}
	})

	return order[:min(size, m)]
}

// widen copies a score vector into the float64 form the distance kernel
// consumes.
func widen(s moga.Scores) []float64 {
	v := make([]float64, len(s))
	for i, x := range s {
		v[i] = float64(x)
	}

	return v
}
