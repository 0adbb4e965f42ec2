// Package assistant orchestrates chat and summarization over an LLM and
// the semantic memory store. Provider failures never surface to callers
// as errors; they degrade to fixed fallback replies.
package assistant

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/nucleus-app/nucleus/internal/ai/memory"
	"github.com/nucleus-app/nucleus/internal/ai/provider"
)

// Fallback replies returned instead of errors.
const (
	NotConfiguredReply = "AI services are not configured."
	ErrorReply         = "I apologize, but I encountered an error processing your request."
)

const (
	chatPersona    = "You are Nucleus AI, an intelligent assistant that helps manage the user's life."
	summaryPersona = "You are a helpful AI assistant for Nucleus, a life operating system."
	summaryPrompt  = "Please provide a concise summary of the following:\n\n"
)

// Assistant answers chat messages with memory-augmented context and
// generates summaries. A nil LLM means AI services are not configured.
type Assistant struct {
	llm    provider.LLM
	memory *memory.Store
	logger *slog.Logger
	wg     sync.WaitGroup
}

// New builds an assistant. The memory store is required even when the
// LLM is nil, since an unconfigured store degrades to no-ops on its own.
func New(llm provider.LLM, mem *memory.Store, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{llm: llm, memory: mem, logger: logger}
}

// Chat answers userMessage for userID. Previous memories similar to the
// message are retrieved and folded into the system prompt, and the full
// exchange is recorded back into memory once the reply is generated.
// The reply is always usable text, never an error.
func (a *Assistant) Chat(ctx context.Context, userMessage, systemContext, userID string) string {
	if a.llm == nil {
		return NotConfiguredReply
	}

	relevant := a.memory.Retrieve(ctx, userMessage, userID, 0)

	fullContext := systemContext
	if len(relevant) > 0 {
		fullContext = systemContext + "\n\nRelevant context:\n" + strings.Join(relevant, "\n")
	}

	resp, err := a.llm.Complete(ctx, provider.CompletionRequest{
		Messages: []provider.Message{
			{Role: provider.MessageRoleSystem, Content: systemPrompt(chatPersona, fullContext)},
			{Role: provider.MessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		a.logger.Error("chat completion failed", "error", err, "user_id", userID)
		return ErrorReply
	}
	answer := resp.Text()

	// Record the exchange without blocking the reply. The detached
	// context keeps the write alive after the request finishes.
	if userID != "" {
		transcript := "User: " + userMessage + "\nAssistant: " + answer
		storeCtx := context.WithoutCancel(ctx)
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.memory.Store(storeCtx, transcript, userID, nil)
		}()
	}

	return answer
}

// GenerateSummary produces a concise summary of content. The second
// return value is false when the LLM is unconfigured or the call failed.
func (a *Assistant) GenerateSummary(ctx context.Context, content, systemContext string) (string, bool) {
	if a.llm == nil {
		return "", false
	}

	resp, err := a.llm.Complete(ctx, provider.CompletionRequest{
		Messages: []provider.Message{
			{Role: provider.MessageRoleSystem, Content: systemPrompt(summaryPersona, systemContext)},
			{Role: provider.MessageRoleUser, Content: summaryPrompt + content},
		},
	})
	if err != nil {
		a.logger.Error("summary generation failed", "error", err)
		return "", false
	}
	return resp.Text(), true
}

// Flush waits for pending background memory writes. Called on shutdown
// and by tests that assert on stored transcripts.
func (a *Assistant) Flush() {
	a.wg.Wait()
}

func systemPrompt(persona, context string) string {
	if context == "" {
		return persona
	}
	return persona + " " + context
}
