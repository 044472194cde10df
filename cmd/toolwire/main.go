package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sipeed/toolwire/pkg/agent"
	"github.com/sipeed/toolwire/pkg/config"
	"github.com/sipeed/toolwire/pkg/envelope"
	"github.com/sipeed/toolwire/pkg/logger"
	"github.com/sipeed/toolwire/pkg/media"
	"github.com/sipeed/toolwire/pkg/metrics"
	"github.com/sipeed/toolwire/pkg/providers"
	"github.com/sipeed/toolwire/pkg/tools"
)

const usage = `toolwire envelope inspector
Paste envelope text; a completed <toolResponse> block is parsed automatically.
Commands:
  /sniff <base64|data-url>       classify an image payload by signature
  /format <name> <status> <msg>  build an envelope
  /run <tool> [json-args]        execute a tool and print its envelope
  /tools                         list registered tools
  /buffer                        show unparsed buffered text
  /clear                         discard the buffer
  /quit                          exit`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolwire: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	registry := tools.NewToolRegistry()
	registry.Register(tools.NewReadFileTool(cfg.Workspace, cfg.RestrictToWorkspace))

	responder := agent.NewResponder(registry)
	responder.SetMaxResultBytes(cfg.MaxResultBytes)
	if cfg.MetricsEnabled {
		responder.SetTracker(metrics.NewTracker(cfg.Workspace))
	}

	rl, err := readline.New("toolwire> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "toolwire: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	assembler := envelope.NewAssembler(func(raw string) {
		printParsed(responder, raw)
	})

	fmt.Println(usage)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}

		switch {
		case line == "/quit" || line == "/exit":
			return
		case line == "/clear":
			assembler.Flush()
		case line == "/buffer":
			fmt.Println(assembler.Remainder())
		case line == "/tools":
			fmt.Println(strings.Join(registry.List(), "\n"))
		case strings.HasPrefix(line, "/sniff "):
			sniff(strings.TrimSpace(strings.TrimPrefix(line, "/sniff ")))
		case strings.HasPrefix(line, "/format "):
			format(strings.TrimPrefix(line, "/format "))
		case strings.HasPrefix(line, "/run "):
			run(responder, strings.TrimPrefix(line, "/run "))
		default:
			assembler.Append(line + "\n")
		}
	}

	if rest, err := assembler.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "unclosed envelope in buffer: %v\n%s\n", err, rest)
	}
}

func printParsed(responder *agent.Responder, raw string) {
	resp, err := responder.Recover(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return
	}

	out, _ := json.MarshalIndent(map[string]interface{}{
		"toolName":   resp.ToolName,
		"toolStatus": resp.ToolStatus,
		"toolResult": resp.ToolResult,
		"hasImages":  resp.HasImages,
	}, "", "  ")
	fmt.Println(string(out))
}

func sniff(payload string) {
	mime := media.SniffMIMEType(payload)
	if mime == "" {
		fmt.Printf("unknown signature (callers default to %s)\n", media.DefaultImageMIME)
		return
	}
	fmt.Println(mime)
}

func format(rest string) {
	parts := strings.SplitN(rest, " ", 3)
	if len(parts) < 3 {
		fmt.Println("usage: /format <name> <status> <message>")
		return
	}
	fmt.Println(envelope.Format(parts[0], envelope.Status(parts[1]), parts[2], false))
}

func run(responder *agent.Responder, rest string) {
	parts := strings.SplitN(rest, " ", 2)
	name := parts[0]

	args := map[string]interface{}{}
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		if err := json.Unmarshal([]byte(parts[1]), &args); err != nil {
			fmt.Fprintf(os.Stderr, "invalid args JSON: %v\n", err)
			return
		}
	}

	msg := responder.Run(context.Background(), providers.ToolCall{Name: name, Arguments: args})
	fmt.Println(msg.Content)
	for _, part := range msg.ContentParts {
		fmt.Printf("[attached %s image, %d bytes base64]\n", part.ResolvedMediaType(), len(part.Data))
	}
}
