// Package toolkit contains the concrete tools registered with the agent:
// arithmetic, weather, web scraping, web search, encyclopedia lookup,
// sandboxed code execution, and file I/O. The defaults sub-package assembles
// them into a single ToolBox in the canonical catalog order.
package toolkit
