// Package defaults assembles the built-in tool set in its canonical
// registration order.
package defaults

import (
	"fmt"

	"reagent/pkg/toolkit/calc"
	"reagent/pkg/toolkit/coderun"
	"reagent/pkg/toolkit/files"
	"reagent/pkg/toolkit/weather"
	"reagent/pkg/toolkit/webscrape"
	"reagent/pkg/toolkit/websearch"
	"reagent/pkg/toolkit/wikipedia"
	"reagent/pkg/tools/toolbox"
)

// Config adjusts the built-in tools.
type Config struct {
	// WorkDir confines FileWriter and FileReader. Empty means the process
	// working directory.
	WorkDir string
}

// New builds a ToolBox with every built-in tool registered. The order is
// fixed; it is the order tools appear in the prompt catalog.
func New(cfg Config) (*toolbox.ToolBox, error) {
	fs := files.New(cfg.WorkDir)

	box := toolbox.New()
	err := box.Register(
		calc.Tool(),
		wikipedia.New().Tool(),
		websearch.New().Tool(),
		weather.New().Tool(),
		webscrape.New().Tool(),
		coderun.New().Tool(),
		fs.WriterTool(),
		fs.ReaderTool(),
	)
	if err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}

	return box, nil
}
