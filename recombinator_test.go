package moga

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parentRefs(parents []int) []*int {
	refs := make([]*int, len(parents))
	for i := range parents {
		refs[i] = &parents[i]
	}

	return refs
}

func TestCombinations(t *testing.T) {
	want := [][]int{
		{0, 1}, {0, 2}, {0, 3},
		{1, 2}, {1, 3},
		{2, 3},
	}

	if diff := cmp.Diff(want, combinations(4, 2)); diff != "" {
		t.Errorf("combinations(4, 2) mismatch (-want +got):\n%s", diff)
	}

	if got := combinations(3, 4); got != nil {
		t.Errorf("combinations(3, 4) = %v, want nil", got)
	}

	if got := len(combinations(5, 3)); got != 10 {
		t.Errorf("len(combinations(5, 3)) = %d, want 10", got)
	}
}

func TestRecombinationFuncEnumeratesCombinations(t *testing.T) {
	parents := parentRefs([]int{1, 2, 3, 4})

	recombinator := RecombinationFunc(2, func(group []*int) []int {
		return []int{*group[0] + *group[1]}
	})

	offspring, err := recombinator.Recombine(context.Background(), parents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// C(4, 2) = 6 offspring in lexicographic combination order.
	want := []int{3, 4, 5, 5, 6, 7}
	if diff := cmp.Diff(want, offspring); diff != "" {
		t.Errorf("offspring mismatch (-want +got):\n%s", diff)
	}
}

func TestRecombinationFuncMultipleOffspring(t *testing.T) {
	parents := parentRefs([]int{1, 2, 3, 4})

	recombinator := RecombinationFunc(3, func(group []*int) []int {
		sum := *group[0] + *group[1] + *group[2]

		return []int{sum, -sum}
	})

	offspring, err := recombinator.Recombine(context.Background(), parents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// C(4, 3) = 4 groups, two offspring each.
	if len(offspring) != 8 {
		t.Fatalf("got %d offspring, want 8", len(offspring))
	}
}

func TestRecombinationTooFewParents(t *testing.T) {
	recombinator := RecombinationFunc(2, func(group []*int) []int {
		t.Error("recombination function invoked with too few parents")

		return nil
	})

	for _, parents := range [][]*int{nil, parentRefs([]int{1})} {
		offspring, err := recombinator.Recombine(context.Background(), parents)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(offspring) != 0 {
			t.Errorf("got %d offspring from %d parents, want none", len(offspring), len(parents))
		}
	}
}

func TestPairRecombination(t *testing.T) {
	parents := parentRefs([]int{10, 20})

	recombinator := PairRecombination(func(a, b *int) int {
		return *a + *b
	})

	offspring, err := recombinator.Recombine(context.Background(), parents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(offspring) != 1 || offspring[0] != 30 {
		t.Errorf("PairRecombination offspring = %v, want [30]", offspring)
	}
}

func TestPopulationRecombinator(t *testing.T) {
	parents := parentRefs([]int{1, 2, 3})

	recombinator := PopulationRecombinator(func(group []*int) []int {
		return []int{len(group)}
	})

	offspring, err := recombinator.Recombine(context.Background(), parents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(offspring) != 1 || offspring[0] != 3 {
		t.Errorf("custom recombinator output not passed through: %v", offspring)
	}
}

func TestRecombinatorParallelMatchesSequential(t *testing.T) {
	values := make([]int, 12)
	for i := range values {
		values[i] = i
	}

	parents := parentRefs(values)

	build := func() Recombinator[int] {
		return RecombinationFunc(2, func(group []*int) []int {
			return []int{*group[0]*100 + *group[1]}
		})
	}

	sequential, err := build().Recombine(context.Background(), parents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, recombinator := range []Recombinator[int]{build().ParEach(), build().ParBatch()} {
		parallel, err := recombinator.Recombine(context.Background(), parents)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if diff := cmp.Diff(sequential, parallel); diff != "" {
			t.Errorf("parallel offspring diverge from sequential (-sequential +parallel):\n%s", diff)
		}
	}
}

func TestRecombinationFuncBadParentCount(t *testing.T) {
	for _, parents := range []int{0, 5, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("RecombinationFunc(%d, fn) did not panic", parents)
				}
			}()

			RecombinationFunc(parents, func([]*int) []int { return nil })
		}()
	}
}
