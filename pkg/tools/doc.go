// Package tools provides the tool layer of the agent runtime.
//
// The [reagent/pkg/tools/toolbox] sub-package holds the Tool type, the
// ordered ToolBox registry, and the Executor that normalizes tool output
// into observation strings. Concrete tool implementations live under
// pkg/toolkit and register themselves into a ToolBox.
package tools
