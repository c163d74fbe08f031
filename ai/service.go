package ai

import (
	"context"
	"errors"
)

// Service 是对话逻辑的主要入口点。
// 它负责维护每个会话的滚动历史，并在每次请求时把上下文重新提交给模型。
type Service struct {
	config    Config
	store     ConversationStore
	completer Completer
}

// Option 是配置 Service 的函数。
type Option func(*Service)

// WithStore 替换默认的内存历史存储。
func WithStore(store ConversationStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithCompleter 替换默认的 OpenAI 补全后端。
func WithCompleter(completer Completer) Option {
	return func(s *Service) {
		s.completer = completer
	}
}

// NewService 创建一个新的对话服务实例。
// APIKey 是唯一必填的配置项，缺失时立即返回错误；其余字段使用文档化的默认值。
func NewService(config *Config, opts ...Option) (*Service, error) {
	if config == nil || config.APIKey == "" {
		return nil, errors.New("api key is required")
	}

	s := &Service{config: config.withDefaults()}
	for _, o := range opts {
		o(s)
	}
	if s.store == nil {
		s.store = NewMemoryStore(s.config.MaxMessages)
	}
	if s.completer == nil {
		s.completer = NewOpenAICompleter(&s.config)
	}
	return s, nil
}

// SendMessage 发送一条消息并返回模型的回复。
//
// 核心流程:
//
//	SendRequest
//	     |
//	     v
//	+-------------------------+
//	| ConversationStore       |
//	| 1. Load History         |
//	+-----------+-------------+
//	            |
//	            v
//	+-------------------------+
//	| Compose                 |
//	| [system] + history +    |
//	| [new message]           |
//	+-----------+-------------+
//	            |
//	            v
//	+-------------------------+
//	| Completer               |
//	| 2. Complete()           |
//	+-----------+-------------+
//	            |
//	            v
//	+-------------------------+
//	| ConversationStore       |
//	| 3. Append outgoing      |
//	| 4. Append incoming      |
//	+-------------------------+
//
// override 为本次调用的补全参数，按字段覆盖实例默认值，传 nil 表示全部使用默认。
// 调用失败时返回 *CompletionError，且历史记录保持不变。
func (s *Service) SendMessage(ctx context.Context, req SendRequest, override *CompletionParams) (*ResponseMessage, error) {
	role := req.Role
	if role == "" {
		role = RoleUser
	}
	systemMessage := req.SystemMessage
	if systemMessage == "" {
		systemMessage = s.config.SystemMessage
	}

	// Step 1: 加载会话历史（已按保留上限裁剪）
	history := s.store.GetHistory(req.ConversationID)

	// Step 2: 组装提交列表：system 消息 + 历史 + 本次新消息
	outgoing := Message{Role: role, Content: req.Text, Name: req.Name}
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: systemMessage})
	messages = append(messages, history...)
	messages = append(messages, outgoing)

	// Step 3: 调用补全后端（实例默认参数与本次覆盖逐字段合并）
	result, err := s.completer.Complete(ctx, CompletionRequest{
		Messages: messages,
		Params:   s.config.CompletionParams.merge(override),
	})
	if err != nil {
		// 失败时不写历史
		return nil, asCompletionError(err)
	}

	// Step 4: 成功后按时间顺序落库：先本次发出的消息，再模型的回复
	s.store.Append(req.ConversationID, outgoing)
	s.store.Append(req.ConversationID, Message{Role: result.Role, Content: result.Content})

	return &ResponseMessage{
		Content: result.Content,
		Role:    result.Role,
		ID:      result.ID,
		Created: result.Created,
		Model:   result.Model,
		Usage:   result.Usage,
	}, nil
}

// GetHistory 返回指定会话当前保留的历史记录（最旧的在前）。
func (s *Service) GetHistory(conversationID string) []Message {
	return s.store.GetHistory(conversationID)
}

// SetHistory 整体替换指定会话的历史记录。
func (s *Service) SetHistory(conversationID string, messages []Message) {
	s.store.SetHistory(conversationID, messages)
}
