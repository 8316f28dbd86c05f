package dispatch

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Keys of the global configuration every command receives.
const (
	KeyHome    = "home"
	KeyCLIHome = "cliHome"
)

// ExecutionContext is the configuration handed to a command package. Keys
// the CLI does not know about pass through unchanged.
type ExecutionContext map[string]any

// NewExecutionContext builds the global configuration.
func NewExecutionContext(home, cliHome string) ExecutionContext {
	return ExecutionContext{
		KeyHome:    home,
		KeyCLIHome: cliHome,
	}
}

// Merge returns a copy of c overlaid with opts. Option values win over
// global ones. c itself is not modified.
func (c ExecutionContext) Merge(opts map[string]any) ExecutionContext {
	out := make(ExecutionContext, len(c)+len(opts))
	maps.Copy(out, c)
	maps.Copy(out, opts)
	return out
}

// Marshal serializes the context as the child's sole argument.
func (c ExecutionContext) Marshal() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("serializing execution context: %w", err)
	}
	return data, nil
}
