package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sipeed/toolwire/pkg/logger"
)

// ToolRegistry holds the available tools by name.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]Tool)}
}

// Register adds a tool, replacing any previous tool with the same name.
func (r *ToolRegistry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

func (r *ToolRegistry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns the registered tool names, sorted.
func (r *ToolRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs a tool by name. An unknown tool produces an error result
// rather than a Go error so the outcome still flows back as an envelope.
func (r *ToolRegistry) Execute(ctx context.Context, name string, args map[string]interface{}) *ToolResult {
	tool, ok := r.Get(name)
	if !ok {
		return ErrorResult(fmt.Sprintf("Unknown tool: %s", name))
	}

	result := tool.Execute(ctx, args)
	logger.DebugCF("tools", "Tool executed",
		map[string]interface{}{
			"tool":     name,
			"is_error": result.IsError,
			"images":   len(result.Media),
		})
	return result
}
