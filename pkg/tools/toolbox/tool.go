package toolbox

import (
	"context"
	"time"
)

// Handler executes a tool with a raw string argument and returns a text result.
// The argument arrives exactly as the model produced it, trimmed of surrounding
// whitespace; each tool defines its own input convention.
type Handler func(ctx context.Context, input string) (string, error)

// Tool represents an executable tool with a name, a description shown verbatim
// in the prompt catalog, and a handler. Tools are registered once at agent
// construction and are immutable thereafter.
type Tool struct {
	Name        string
	Description string

	// Timeout bounds a single invocation. Zero means no deadline; tools that
	// perform network or disk I/O should set one so a hung call becomes a
	// timeout observation instead of blocking the loop indefinitely.
	Timeout time.Duration

	Handler Handler
}
