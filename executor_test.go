package moga

import (
	"context"
	"testing"
)

func TestBatchSize(t *testing.T) {
	tests := []struct {
		n       int
		workers int
		want    int
	}{
		{10, 2, 5},
		{10, 3, 4},
		{10, 4, 3},
		{1, 8, 1},
		{5, 8, 1},
		{100, 1, 100},
	}

	for _, test := range tests {
		if got := batchSize(test.n, test.workers); got != test.want {
			t.Errorf("batchSize(%d, %d) = %d, want %d", test.n, test.workers, got, test.want)
		}
	}
}

func TestForEachCoversEveryIndex(t *testing.T) {
	strategies := []Strategy{Sequential, ParallelEach, ParallelBatch}

	for _, strategy := range strategies {
		const n = 137

		out := make([]int, n)

		err := forEach(context.Background(), n, 4, strategy, func(_ context.Context, i int) error {
			out[i] = i * 2

			return nil
		})
		if err != nil {
			t.Fatalf("strategy %d: unexpected error: %v", strategy, err)
		}

		// Each output lands at the index of its input.
		for i, v := range out {
			if v != i*2 {
				t.Errorf("strategy %d: out[%d] = %d, want %d", strategy, i, v, i*2)
			}
		}
	}
}

func TestForEachSequentialRunsInIndexOrder(t *testing.T) {
	var order []int

	err := forEach(context.Background(), 10, 0, Sequential, func(_ context.Context, i int) error {
		order = append(order, i)

		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range order {
		if v != i {
			t.Fatalf("sequential execution visited %v, want index order", order)
		}
	}
}

func TestForEachCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, strategy := range []Strategy{Sequential, ParallelEach, ParallelBatch} {
		err := forEach(ctx, 100, 4, strategy, func(_ context.Context, _ int) error {
			return nil
		})
		if err == nil {
			t.Errorf("strategy %d: expected an error from a cancelled context", strategy)
		}
	}
}

func TestForEachEmptyInput(t *testing.T) {
	for _, strategy := range []Strategy{Sequential, ParallelEach, ParallelBatch} {
		err := forEach(context.Background(), 0, 4, strategy, func(_ context.Context, _ int) error {
			t.Error("callback invoked for empty input")

			return nil
		})
		if err != nil {
			t.Errorf("strategy %d: unexpected error: %v", strategy, err)
		}
	}
}
