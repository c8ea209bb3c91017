// Package toolbox provides the tool registry and executor used by the agent
// loop. A ToolBox holds name-to-tool bindings in registration order; the
// Executor invokes a tool and converts every possible failure into an
// observation string the reasoning loop can feed back to the model.
package toolbox

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateTool is returned by Register when a tool with the same name is
// already present.
var ErrDuplicateTool = errors.New("toolbox: duplicate tool name")

// ErrUnknownTool is returned by Lookup when no tool with the given name is
// registered. Lookup is a case-sensitive exact match.
var ErrUnknownTool = errors.New("toolbox: unknown tool")

// ToolBox is an ordered registry of tools. Registration order is preserved so
// the prompt catalog renders deterministically. The zero value is not usable;
// create one with New.
//
// A ToolBox is populated once at agent construction and only read afterwards,
// so it needs no internal locking.
type ToolBox struct {
	tools map[string]Tool
	order []string
}

// New creates a ToolBox ready for use.
func New() *ToolBox {
	return &ToolBox{
		tools: make(map[string]Tool),
	}
}

// Register adds tools to the ToolBox. It fails with ErrDuplicateTool if any
// name is already present; tools registered before the failing one remain.
func (tb *ToolBox) Register(tools ...Tool) error {
	for _, t := range tools {
		if _, exists := tb.tools[t.Name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateTool, t.Name)
		}

		tb.tools[t.Name] = t
		tb.order = append(tb.order, t.Name)
	}

	return nil
}

// Lookup returns the tool registered under name. It fails with ErrUnknownTool
// when the name is absent; the match is case-sensitive and exact.
func (tb *ToolBox) Lookup(name string) (Tool, error) {
	t, ok := tb.tools[name]
	if !ok {
		return Tool{}, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}

	return t, nil
}

// List returns all registered tools in registration order.
func (tb *ToolBox) List() []Tool {
	result := make([]Tool, 0, len(tb.order))
	for _, name := range tb.order {
		result = append(result, tb.tools[name])
	}

	return result
}

// Names returns the registered tool names in registration order.
func (tb *ToolBox) Names() []string {
	names := make([]string, len(tb.order))
	copy(names, tb.order)

	return names
}

// NameSet returns the registered names joined by ", ", as rendered in the
// prompt's format instructions.
func (tb *ToolBox) NameSet() string {
	return strings.Join(tb.order, ", ")
}

// Len returns the number of registered tools.
func (tb *ToolBox) Len() int {
	return len(tb.order)
}
