package ai

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAICompleter is the default Completer, backed by the official OpenAI
// SDK. Transport, authentication and retries are entirely the SDK's concern.
type OpenAICompleter struct {
	client openai.Client
}

// NewOpenAICompleter builds a completer from the service configuration.
// With Debug enabled the SDK logs every raw request and response to stderr.
func NewOpenAICompleter(cfg *Config) *OpenAICompleter {
	opts := []option.RequestOption{option.WithAPIKey(resolveAPIKey(cfg.APIKey))}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Debug {
		opts = append(opts, option.WithDebugLog(log.New(os.Stderr, "openai: ", log.LstdFlags)))
	}
	return &OpenAICompleter{client: openai.NewClient(opts...)}
}

// Complete implements Completer.
func (c *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Params.Model),
		Messages: toOpenAIMessages(req.Messages),
	}
	if v := req.Params.Temperature; v != nil {
		params.Temperature = openai.Float(*v)
	}
	if v := req.Params.TopP; v != nil {
		params.TopP = openai.Float(*v)
	}
	if v := req.Params.PresencePenalty; v != nil {
		params.PresencePenalty = openai.Float(*v)
	}
	if v := req.Params.FrequencyPenalty; v != nil {
		params.FrequencyPenalty = openai.Float(*v)
	}
	if v := req.Params.MaxTokens; v != nil {
		params.MaxTokens = openai.Int(*v)
	}
	if len(req.Params.Stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: req.Params.Stop}
	}

	var raw *http.Response
	resp, err := c.client.Chat.Completions.New(ctx, params, option.WithResponseInto(&raw))
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		// A 2xx payload without a message body; the status line is all the
		// detail there is.
		status := "empty completion response"
		if raw != nil {
			status = raw.Status
		}
		return nil, &CompletionError{Message: status}
	}

	choice := resp.Choices[0]
	result := &CompletionResult{
		Content: choice.Message.Content,
		Role:    string(choice.Message.Role),
		ID:      resp.ID,
		Created: resp.Created,
		Model:   resp.Model,
	}
	if resp.Usage.TotalTokens > 0 {
		result.Usage = &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return result, nil
}

// toOpenAIMessages re-emits stored messages with their original role, name
// and content in the SDK's parameter shape.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			sys := &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{OfString: openai.String(m.Content)},
			}
			if m.Name != "" {
				sys.Name = openai.String(m.Name)
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfSystem: sys})
		case RoleAssistant:
			asst := &openai.ChatCompletionAssistantMessageParam{
				Content: openai.ChatCompletionAssistantMessageParamContentUnion{OfString: openai.String(m.Content)},
			}
			if m.Name != "" {
				asst.Name = openai.String(m.Name)
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: asst})
		default:
			user := &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{OfString: openai.String(m.Content)},
			}
			if m.Name != "" {
				user.Name = openai.String(m.Name)
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfUser: user})
		}
	}
	return out
}

// classifyOpenAIError forwards the SDK failure's message and, when the
// endpoint supplied them, its type/param/code classification fields.
func classifyOpenAIError(err error) *CompletionError {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return &CompletionError{
			Message: apierr.Message,
			Type:    apierr.Type,
			Param:   apierr.Param,
			Code:    apierr.Code,
		}
	}
	return &CompletionError{Message: err.Error()}
}
