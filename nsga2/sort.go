package nsga2

import (
	"fmt"

	"github.com/tommoulard/moga"
)

// member is one survivor of the truncation step: an index into the combined
// population, the front it was assigned to and, for members of the last
// partially admitted front, its crowding distance.
type member struct {
	index    int
	front    int
	crowding float64
}

// selectSurvivors ranks the combined population by fast non-dominated
// sorting and returns exactly target members, fully admitted fronts first,
// then the most isolated members of the last front. The result is ordered by
// (front ascending, crowding distance descending), so the best individual
// comes first. Panics when a score comparison hits NaN.
func selectSurvivors(scores []moga.Scores, target int) []member {
	dominanceLists := make([][]int, len(scores))
	dominanceCounts := make([]int, len(scores))

	// One dominance comparison per unordered pair.
	for i := range scores {
		for j := i + 1; j < len(scores); j++ {
			ord, err := moga.Dominance(scores[i], scores[j])
			if err != nil {
				panic(err)
			}

			switch ord {
			case moga.Dominates:
				dominanceLists[i] = append(dominanceLists[i], j)
				dominanceCounts[j]++
			case moga.DominatedBy:
				dominanceLists[j] = append(dominanceLists[j], i)
				dominanceCounts[i]++
			}
		}
	}

	var current []int

	for i, count := range dominanceCounts {
		if count == 0 {
			current = append(current, i)
		}
	}

	if len(current) == 0 {
		panic("nsga2: first front is empty")
	}

	survivors := make([]member, 0, target)
	front := 0

	if target > len(scores) {
		panic(fmt.Sprintf("nsga2: truncation target %d exceeds population size %d", target, len(scores)))
	}

	// Admit whole fronts while they fit, stop at the one that crosses the
	// target.
	for len(survivors)+len(current) < target {
		var next []int

		for _, i := range current {
			survivors = append(survivors, member{index: i, front: front})

			for _, j := range dominanceLists[i] {
				dominanceCounts[j]--
				if dominanceCounts[j] == 0 {
					next = append(next, j)
				}
			}
		}

		front++
		current = next
	}

	need := target - len(survivors)
	last := rankByCrowding(current, scores)

	for _, m := range last[:need] {
		m.front = front
		survivors = append(survivors, m)
	}

	assertUnique(survivors)

	return survivors
}

// assertUnique verifies that no population index was admitted twice.
func assertUnique(survivors []member) {
	seen := make(map[int]struct{}, len(survivors))

	for _, m := range survivors {
		if _, dup := seen[m.index]; dup {
			panic(fmt.Sprintf("nsga2: index %d selected twice during truncation", m.index))
		}

		seen[m.index] = struct{}{}
	}
}
