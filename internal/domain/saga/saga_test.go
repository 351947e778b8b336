package saga_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"atlas-cms/internal/domain/saga"
)

func TestSaga_CompensateRunsInReverseOrder(t *testing.T) {
	sg := saga.New(zerolog.Nop())

	var order []string
	sg.Push("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	sg.Push("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})
	sg.Push("third", func(ctx context.Context) error {
		order = append(order, "third")
		return nil
	})

	sg.Compensate(context.Background())

	want := []string{"third", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("ran %d compensations, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("compensation %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestSaga_CompensateContinuesPastFailures(t *testing.T) {
	sg := saga.New(zerolog.Nop())

	var ran []string
	sg.Push("a", func(ctx context.Context) error {
		ran = append(ran, "a")
		return nil
	})
	sg.Push("b", func(ctx context.Context) error {
		ran = append(ran, "b")
		return errors.New("undo failed")
	})
	sg.Push("c", func(ctx context.Context) error {
		ran = append(ran, "c")
		return nil
	})

	sg.Compensate(context.Background())

	if len(ran) != 3 {
		t.Fatalf("ran %d compensations, want 3 (failure must not stop the rest)", len(ran))
	}
}

func TestSaga_CommitClearsSteps(t *testing.T) {
	sg := saga.New(zerolog.Nop())

	ran := false
	sg.Push("step", func(ctx context.Context) error {
		ran = true
		return nil
	})
	if sg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", sg.Len())
	}

	sg.Commit()
	if sg.Len() != 0 {
		t.Errorf("Len after Commit = %d, want 0", sg.Len())
	}

	sg.Compensate(context.Background())
	if ran {
		t.Error("compensation ran after Commit")
	}
}

func TestSaga_CompensateClearsSteps(t *testing.T) {
	sg := saga.New(zerolog.Nop())

	calls := 0
	sg.Push("step", func(ctx context.Context) error {
		calls++
		return nil
	})

	sg.Compensate(context.Background())
	sg.Compensate(context.Background())

	if calls != 1 {
		t.Errorf("compensation ran %d times, want 1", calls)
	}
}

func TestSaga_EmptyCompensateIsNoop(t *testing.T) {
	sg := saga.New(zerolog.Nop())
	sg.Compensate(context.Background())
	if sg.Len() != 0 {
		t.Errorf("Len = %d, want 0", sg.Len())
	}
}
