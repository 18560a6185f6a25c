package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "clinicbook/pkg/errors"
)

type fakeFlow struct {
	name  string
	steps []*Step
}

func (f fakeFlow) Name() string   { return f.name }
func (f fakeFlow) Steps() []*Step { return f.steps }

func TestEngineRunsStepsInOrder(t *testing.T) {
	var order []string

	flow := fakeFlow{
		name: "ordered",
		steps: []*Step{
			NewStep("first", func(ctx *FlowContext) error {
				order = append(order, "first")
				return nil
			}),
			NewStep("second", func(ctx *FlowContext) error {
				order = append(order, "second")
				return nil
			}),
		},
	}

	engine := NewEngine(flow)
	fc := NewFlowContext(context.Background(), nil, nil)

	if err := engine.Run("ordered", fc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("steps ran out of order: %v", order)
	}
}

func TestEngineStopsAtFirstFailure(t *testing.T) {
	var secondRan bool

	flow := fakeFlow{
		name: "failing",
		steps: []*Step{
			NewStep("broken", func(ctx *FlowContext) error {
				return errors.New("boom")
			}),
			NewStep("unreached", func(ctx *FlowContext) error {
				secondRan = true
				return nil
			}),
		},
	}

	engine := NewEngine(flow)
	err := engine.Run("failing", NewFlowContext(context.Background(), nil, nil))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("expected failing step name in error, got: %v", err)
	}
	if secondRan {
		t.Error("step after the failure should not run")
	}
}

func TestEnginePreservesAppErrors(t *testing.T) {
	conflict := apperrors.Conflict("slot taken")

	flow := fakeFlow{
		name: "conflicting",
		steps: []*Step{
			NewStep("check", func(ctx *FlowContext) error {
				return conflict
			}),
		},
	}

	engine := NewEngine(flow)
	err := engine.Run("conflicting", NewFlowContext(context.Background(), nil, nil))
	if err != conflict {
		t.Errorf("expected the AppError to pass through untouched, got: %v", err)
	}
}

func TestEngineRejectsUnknownFlow(t *testing.T) {
	engine := NewEngine()
	err := engine.Run("missing", NewFlowContext(context.Background(), nil, nil))
	if err == nil {
		t.Fatal("expected error for unknown flow")
	}
}

func TestFlowContextInputString(t *testing.T) {
	fc := NewFlowContext(context.Background(), map[string]any{
		"name":  "value",
		"count": 3,
	}, nil)

	if got := fc.InputString("name"); got != "value" {
		t.Errorf("unexpected value: %s", got)
	}
	if got := fc.InputString("count"); got != "" {
		t.Errorf("mistyped input should read as empty, got: %s", got)
	}
	if got := fc.InputString("absent"); got != "" {
		t.Errorf("absent input should read as empty, got: %s", got)
	}
}
