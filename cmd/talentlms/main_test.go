package main

import (
	"context"
	"errors"
	"testing"
)

func stubExecute(t *testing.T, exec func(context.Context, []string) error, mapCode func(error) int) {
	t.Helper()
	origExec := executeCmd
	origMap := mapExitCode
	t.Cleanup(func() {
		executeCmd = origExec
		mapExitCode = origMap
	})
	executeCmd = exec
	if mapCode != nil {
		mapExitCode = mapCode
	}
}

func TestRun_Success(t *testing.T) {
	var gotArgs []string
	stubExecute(t, func(ctx context.Context, args []string) error {
		if ctx.Err() != nil {
			t.Fatalf("context should be live, got %v", ctx.Err())
		}
		gotArgs = append([]string(nil), args...)
		return nil
	}, func(error) int {
		t.Fatal("mapExitCode should not be called on success")
		return 99
	})

	if code := run([]string{"users", "get", "1"}); code != 0 {
		t.Fatalf("run() code = %d, want 0", code)
	}

	want := []string{"users", "get", "1"}
	if len(gotArgs) != len(want) {
		t.Fatalf("args len = %d, want %d", len(gotArgs), len(want))
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, gotArgs[i], want[i])
		}
	}
}

func TestRun_ErrorUsesMappedExitCode(t *testing.T) {
	executeErr := errors.New("boom")
	called := false
	stubExecute(t, func(context.Context, []string) error {
		return executeErr
	}, func(err error) int {
		called = true
		if !errors.Is(err, executeErr) {
			t.Fatalf("mapExitCode got err %v, want %v", err, executeErr)
		}
		return 23
	})

	if code := run([]string{"site", "info"}); code != 23 {
		t.Fatalf("run() code = %d, want 23", code)
	}
	if !called {
		t.Fatal("expected mapExitCode to be called")
	}
}

func TestRun_DefaultExitCodeMapping(t *testing.T) {
	stubExecute(t, func(context.Context, []string) error {
		return errors.New("boom")
	}, nil)

	if code := run(nil); code != 1 {
		t.Fatalf("run() code = %d, want 1", code)
	}
}
