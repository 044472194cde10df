package providers

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/sipeed/toolwire/pkg/media"
)

// OpenAIProvider speaks the chat completions API. Works against any
// OpenAI-compatible endpoint via baseURL.
type OpenAIProvider struct {
	client       openai.Client
	defaultModel string
}

func NewOpenAIProvider(apiKey, baseURL, defaultModel string) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if defaultModel == "" {
		defaultModel = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client:       openai.NewClient(opts...),
		defaultModel: defaultModel,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message, tools []ToolDefinition, model string, options map[string]interface{}) (*LLMResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: buildOpenAIMessages(messages),
	}

	if mt, ok := options["max_tokens"].(int); ok {
		params.MaxTokens = openai.Int(int64(mt))
	}
	if temp, ok := options["temperature"].(float64); ok {
		params.Temperature = openai.Float(temp)
	}
	if len(tools) > 0 {
		params.Tools = translateToolsForOpenAI(tools)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai API call: empty choices")
	}

	return parseOpenAIResponse(resp), nil
}

func (p *OpenAIProvider) GetDefaultModel() string {
	return p.defaultModel
}

// buildOpenAIMessages converts provider-agnostic messages. Image parts travel
// as data URLs; the MIME type in the URL comes from the signature sniffer
// when the part doesn't carry one.
func buildOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			out = append(out, openai.SystemMessage(msg.Content))
		case "user":
			if hasImageParts(msg) {
				out = append(out, openai.UserMessage(openAIContentParts(msg)))
			} else {
				out = append(out, openai.UserMessage(msg.Content))
			}
		case "assistant":
			if len(msg.ToolCalls) > 0 {
				asst := openai.ChatCompletionAssistantMessageParam{}
				if msg.Content != "" {
					asst.Content.OfString = openai.String(msg.Content)
				}
				for _, tc := range msg.ToolCalls {
					asst.ToolCalls = append(asst.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
						OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
							ID: tc.ID,
							Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
								Name:      toolCallName(tc),
								Arguments: toolCallArguments(tc),
							},
						},
					})
				}
				out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &asst})
			} else {
				out = append(out, openai.AssistantMessage(msg.Content))
			}
		case "tool":
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
			// The tool role cannot carry images; attach them as a follow-up
			// user message so the model still sees them.
			if hasImageParts(msg) {
				out = append(out, openai.UserMessage(openAIContentParts(msg)))
			}
		}
	}
	return out
}

func hasImageParts(msg Message) bool {
	for _, p := range msg.ContentParts {
		if p.IsImage() {
			return true
		}
	}
	return false
}

func openAIContentParts(msg Message) []openai.ChatCompletionContentPartUnionParam {
	var parts []openai.ChatCompletionContentPartUnionParam
	if msg.Role == "user" && msg.Content != "" {
		parts = append(parts, openai.TextContentPart(msg.Content))
	}
	for _, p := range msg.ContentParts {
		switch {
		case p.IsImage():
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: media.DataURL(p.MediaType, p.Data),
			}))
		case p.Text != "":
			parts = append(parts, openai.TextContentPart(p.Text))
		}
	}
	return parts
}

func toolCallName(tc ToolCall) string {
	if tc.Name != "" {
		return tc.Name
	}
	if tc.Function != nil {
		return tc.Function.Name
	}
	return ""
}

func toolCallArguments(tc ToolCall) string {
	if tc.Function != nil && tc.Function.Arguments != "" {
		return tc.Function.Arguments
	}
	if len(tc.Arguments) > 0 {
		if data, err := json.Marshal(tc.Arguments); err == nil {
			return string(data)
		}
	}
	return "{}"
}

func translateToolsForOpenAI(tools []ToolDefinition) []openai.ChatCompletionToolUnionParam {
	result := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		fn := openai.FunctionDefinitionParam{
			Name:       t.Function.Name,
			Parameters: openai.FunctionParameters(t.Function.Parameters),
		}
		if t.Function.Description != "" {
			fn.Description = openai.String(t.Function.Description)
		}
		result = append(result, openai.ChatCompletionFunctionTool(fn))
	}
	return result
}

func parseOpenAIResponse(resp *openai.ChatCompletion) *LLMResponse {
	choice := resp.Choices[0]

	var toolCalls []ToolCall
	for _, tc := range choice.Message.ToolCalls {
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			args = map[string]interface{}{"raw": tc.Function.Arguments}
		}
		toolCalls = append(toolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
			Function: &FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}

	return &LLMResponse{
		Content:      choice.Message.Content,
		ToolCalls:    toolCalls,
		FinishReason: string(choice.FinishReason),
		Usage: &UsageInfo{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}
}
