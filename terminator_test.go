package moga

import (
	"context"
	"testing"
)

func TestGenerationTerminatorCountdown(t *testing.T) {
	terminator := GenerationTerminator[int](3)

	for i := range 3 {
		stop, err := terminator.Terminate(context.Background(), nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stop {
			t.Fatalf("terminator fired on call %d, want after 3", i+1)
		}
	}

	stop, err := terminator.Terminate(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stop {
		t.Error("terminator did not fire on the fourth call")
	}

	// Once exhausted, it keeps returning true.
	stop, _ = terminator.Terminate(context.Background(), nil, nil)
	if !stop {
		t.Error("exhausted terminator returned false")
	}
}

func TestGenerationTerminatorZero(t *testing.T) {
	terminator := GenerationTerminator[int](0)

	stop, err := terminator.Terminate(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stop {
		t.Error("GenerationTerminator(0) did not fire immediately")
	}
}

func TestTerminationFuncShortCircuits(t *testing.T) {
	solutions := []int{1, 2, 3, 4}
	scores := []Scores{{1}, {2}, {3}, {4}}

	calls := 0
	terminator := TerminationFunc(func(s *int, _ Scores) bool {
		calls++

		return *s == 1
	})

	stop, err := terminator.Terminate(context.Background(), solutions, scores)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stop {
		t.Error("terminator did not report the matching solution")
	}

	// Sequential execution stops at the first true.
	if calls != 1 {
		t.Errorf("predicate invoked %d times, want 1", calls)
	}
}

func TestTerminationFuncAnyMatch(t *testing.T) {
	solutions := make([]int, 100)
	scores := make([]Scores, 100)

	for i := range solutions {
		solutions[i] = i
		scores[i] = Scores{Score(i)}
	}

	base := TerminationFunc(func(s *int, _ Scores) bool {
		return *s == 73
	})

	for _, terminator := range []Terminator[int]{base, base.ParEach(), base.ParBatch()} {
		stop, err := terminator.Terminate(context.Background(), solutions, scores)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !stop {
			t.Error("terminator missed the matching solution")
		}
	}
}

func TestTerminationFuncNoMatch(t *testing.T) {
	solutions := []int{1, 2, 3}
	scores := []Scores{{1}, {2}, {3}}

	base := TerminationFunc(func(*int, Scores) bool { return false })

	for _, terminator := range []Terminator[int]{base, base.ParEach(), base.ParBatch()} {
		stop, err := terminator.Terminate(context.Background(), solutions, scores)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if stop {
			t.Error("terminator fired with no matching solution")
		}
	}
}

func TestPopulationTerminatorVerbatim(t *testing.T) {
	terminator := PopulationTerminator(func(solutions []int, _ []Scores) bool {
		return len(solutions) > 2
	})

	stop, err := terminator.Terminate(context.Background(), []int{1, 2, 3}, []Scores{{1}, {2}, {3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stop {
		t.Error("whole-slice terminator return value not honored")
	}
}
