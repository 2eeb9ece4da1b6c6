package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct {
	fail bool
}

func (testMessage) Type() string { return "orchestrator.test.message" }

func (m testMessage) Validate() error {
	if m.fail {
		return errors.New("message invalid")
	}
	return nil
}

func TestHandlerExecutesFunction(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !called {
		t.Fatal("wrapped function never ran")
	}
}

func TestHandlerValidatesMessage(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		t.Fatal("function must not run on invalid message")
		return nil
	})

	err := h.Execute(context.Background(), testMessage{fail: true})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestHandlerWrapsExecutionErrors(t *testing.T) {
	boom := errors.New("boom")
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return boom
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause lost in wrapping: %v", err)
	}
}

func TestHandlerHonorsCanceledContext(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		t.Fatal("function must not run with a dead context")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerTimeout(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}
