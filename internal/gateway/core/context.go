package core

import (
	"context"

	"clinicbook/internal/availability"
	"clinicbook/pkg/client"
	"clinicbook/pkg/config"
)

// Deps bundles everything a flow step may touch: the HTTP clients for the
// domain services, the availability calculator and the shared configuration.
type Deps struct {
	Client *client.Client
	Calc   *availability.Calculator
	Cfg    *config.Config
}

// FlowContext carries state through one flow execution. Input is what the
// caller provided, Process is scratch space between steps, Output is what the
// caller gets back.
type FlowContext struct {
	Ctx     context.Context
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Deps    *Deps
}

func NewFlowContext(ctx context.Context, input map[string]any, deps *Deps) *FlowContext {
	return &FlowContext{
		Ctx:     ctx,
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Deps:    deps,
	}
}

// InputString reads a string input, returning "" when absent or mistyped.
func (c *FlowContext) InputString(key string) string {
	s, _ := c.Input[key].(string)
	return s
}
