package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/trendscan/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, report *model.DailyReport) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, report *model.DailyReport) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, report)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func newTestReport() *model.DailyReport {
	return model.NewDailyReport("https://github.com/trending?since=daily", "ai", 15,
		time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC))
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.continueOnError {
			t.Error("expected continueOnError to be false")
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		if p := New(WithContinueOnError(true)); !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "first"})
	p.AddSteps(&mockStep{name: "second"}, &mockStep{name: "third"})

	if p.StepCount() != 3 {
		t.Errorf("expected 3 steps, got %d", p.StepCount())
	}
	if got := strings.Join(p.StepNames(), ","); got != "first,second,third" {
		t.Errorf("StepNames() = %q", got)
	}
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order and records them", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(context.Context, *model.DailyReport) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(record("a"), record("b"), record("c"))

		report := newTestReport()
		if err := p.Execute(t.Context(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Join(order, "") != "abc" {
			t.Errorf("execution order = %v", order)
		}
		if strings.Join(report.PerformedSteps, "") != "abc" {
			t.Errorf("PerformedSteps = %v", report.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		failing := &mockStep{name: "failing", doFunc: func(context.Context, *model.DailyReport) error {
			return errBoom
		}}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		report := newTestReport()
		if err := p.Execute(t.Context(), report); !errors.Is(err, errBoom) {
			t.Fatalf("expected errBoom, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("step after the failure must not run")
		}
		if len(report.PerformedSteps) != 0 {
			t.Errorf("failed step must not be recorded: %v", report.PerformedSteps)
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		errFirst := errors.New("first")
		p := New(WithContinueOnError(true))
		p.AddSteps(
			&mockStep{name: "a", doFunc: func(context.Context, *model.DailyReport) error { return errFirst }},
			&mockStep{name: "b", doFunc: func(context.Context, *model.DailyReport) error { return errors.New("second") }},
			&mockStep{name: "c"},
		)

		report := newTestReport()
		if err := p.Execute(t.Context(), report); !errors.Is(err, errFirst) {
			t.Fatalf("expected first error, got %v", err)
		}
		if strings.Join(report.PerformedSteps, "") != "c" {
			t.Errorf("PerformedSteps = %v", report.PerformedSteps)
		}
	})

	t.Run("respects cancellation between steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		first := &mockStep{name: "first", doFunc: func(context.Context, *model.DailyReport) error {
			cancel()
			return nil
		}}
		second := &mockStep{name: "second"}

		p := New()
		p.AddSteps(first, second)

		if err := p.Execute(ctx, newTestReport()); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if second.callCount != 0 {
			t.Error("second step must not run after cancellation")
		}
	})
}

// TestPipelineWithLogger tests that the pipeline logs through the given logger.
func TestPipelineWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := New(WithLogger(logger))
	p.AddStep(&mockStep{name: "logged"})

	if err := p.Execute(t.Context(), newTestReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "step=logged") {
		t.Errorf("expected step name in log output: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "date=2026-10-17") {
		t.Errorf("expected report date in log output: %s", buf.String())
	}
}
