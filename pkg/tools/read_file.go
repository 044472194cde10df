package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sipeed/toolwire/pkg/media"
)

// ReadFileTool reads a file from the workspace and returns its content.
// Images come back as base64 media parts so the responder can attach them
// to the request; text files are embedded inline.
type ReadFileTool struct {
	workspace string
	restrict  bool
}

func NewReadFileTool(workspace string, restrict bool) *ReadFileTool {
	return &ReadFileTool{workspace: workspace, restrict: restrict}
}

func (t *ReadFileTool) Name() string {
	return "read_file"
}

func (t *ReadFileTool) Description() string {
	return "Read a file from the workspace. Text content is returned inline; images are attached to the request."
}

func (t *ReadFileTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path to the file, absolute or relative to the workspace",
			},
		},
		"required": []string{"path"},
	}
}

func (t *ReadFileTool) Execute(ctx context.Context, args map[string]interface{}) *ToolResult {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return ErrorResult("path is required")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(t.workspace, path)
	}
	path = filepath.Clean(path)

	if t.restrict {
		rel, err := filepath.Rel(t.workspace, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return ErrorResult(fmt.Sprintf("Path outside workspace: %s", path))
		}
	}

	part, err := media.ProcessFile(path)
	if err != nil {
		return &ToolResult{
			ForLLM:  fmt.Sprintf("reading file: %v", err),
			IsError: true,
			Err:     err,
		}
	}

	if part.IsImage() {
		return &ToolResult{
			ForLLM: fmt.Sprintf("Read image file %s (%s)", part.FileName, part.MediaType),
			Media:  []media.ContentPart{*part},
		}
	}
	return SuccessResult(part.Text)
}
