package ai

import "sync"

// MemoryStore 实现了基于内存的 ConversationStore。
// 每个会话的历史记录保存在 map 的一个有序切片中，进程退出即消失。
type MemoryStore struct {
	maxMessages int
	mu          sync.RWMutex // 全局锁，保护 map 操作并发安全
	histories   map[string][]Message
}

// NewMemoryStore 创建一个新的 MemoryStore。
// maxMessages: 单次提交给模型的消息上限。历史记录最多保留 maxMessages-1 条，
// 因为组装时总会在最前面加上一条 system 消息。
func NewMemoryStore(maxMessages int) *MemoryStore {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &MemoryStore{
		maxMessages: maxMessages,
		histories:   make(map[string][]Message),
	}
}

// GetHistory 返回指定会话的历史记录（最旧的在前）。
// 超出保留上限时只返回最近的 maxMessages-1 条，并同步收缩存储的切片。
// 首次访问的会话会被登记为空历史，保证后续 Append 可见。
func (s *MemoryStore) GetHistory(conversationID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.histories[conversationID]
	if !ok {
		s.histories[conversationID] = []Message{}
		return []Message{}
	}

	keep := s.maxMessages - 1
	if keep < 0 {
		keep = 0
	}
	if len(history) > keep {
		history = history[len(history)-keep:]
		s.histories[conversationID] = history
	}

	// 返回副本，避免调用方修改内部状态
	out := make([]Message, len(history))
	copy(out, history)
	return out
}

// SetHistory 整体替换指定会话的历史记录。
// 此处不做裁剪，超出上限的部分在下次读取时处理。
func (s *MemoryStore) SetHistory(conversationID string, messages []Message) {
	copied := make([]Message, len(messages))
	copy(copied, messages)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[conversationID] = copied
}

// Append 追加一条消息到会话末尾，会话不存在时自动创建。
// 允许暂时超出保留上限。
func (s *MemoryStore) Append(conversationID string, message Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[conversationID] = append(s.histories[conversationID], message)
}
