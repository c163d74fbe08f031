package ai

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// LangChainCompleter adapts a langchaingo model to the Completer interface,
// so non-OpenAI providers (anthropic, googleai, ...) can sit behind the same
// service. Response metadata is limited to what the provider reports through
// GenerationInfo; ID and Created are not available on this path.
type LangChainCompleter struct {
	model llms.Model
}

// NewLangChainCompleter wraps an already-initialized langchaingo model.
func NewLangChainCompleter(model llms.Model) *LangChainCompleter {
	return &LangChainCompleter{model: model}
}

// Complete implements Completer.
func (c *LangChainCompleter) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	contentMessages := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		contentMessages = append(contentMessages, llms.TextParts(toChatMessageType(m.Role), m.Content))
	}

	opts := []llms.CallOption{llms.WithModel(req.Params.Model)}
	if v := req.Params.Temperature; v != nil {
		opts = append(opts, llms.WithTemperature(*v))
	}
	if v := req.Params.TopP; v != nil {
		opts = append(opts, llms.WithTopP(*v))
	}
	if v := req.Params.PresencePenalty; v != nil {
		opts = append(opts, llms.WithPresencePenalty(*v))
	}
	if v := req.Params.FrequencyPenalty; v != nil {
		opts = append(opts, llms.WithFrequencyPenalty(*v))
	}
	if v := req.Params.MaxTokens; v != nil {
		opts = append(opts, llms.WithMaxTokens(int(*v)))
	}
	if len(req.Params.Stop) > 0 {
		opts = append(opts, llms.WithStopWords(req.Params.Stop))
	}

	resp, err := c.model.GenerateContent(ctx, contentMessages, opts...)
	if err != nil {
		return nil, &CompletionError{Message: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return nil, &CompletionError{Message: "empty completion response"}
	}

	choice := resp.Choices[0]
	result := &CompletionResult{
		Content: choice.Content,
		Role:    RoleAssistant,
		Model:   req.Params.Model,
	}
	if usage := usageFromGenerationInfo(choice.GenerationInfo); usage != nil {
		result.Usage = usage
	}
	return result, nil
}

// toChatMessageType maps wire roles onto langchaingo message types.
func toChatMessageType(role string) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

// usageFromGenerationInfo extracts token counts when the provider reports
// them. Key names follow langchaingo's openai/anthropic backends.
func usageFromGenerationInfo(info map[string]any) *Usage {
	if info == nil {
		return nil
	}
	usage := &Usage{}
	if v, ok := asInt64(info["PromptTokens"]); ok {
		usage.PromptTokens = v
	}
	if v, ok := asInt64(info["CompletionTokens"]); ok {
		usage.CompletionTokens = v
	}
	if v, ok := asInt64(info["TotalTokens"]); ok {
		usage.TotalTokens = v
	}
	if usage.PromptTokens == 0 && usage.CompletionTokens == 0 && usage.TotalTokens == 0 {
		return nil
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return usage
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
