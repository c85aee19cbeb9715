package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/ctxutil"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
)

// OfflineChatText answers unmatched commands when no chat model is configured.
const OfflineChatText = "No console skill matched that request and the chat assistant is offline. Try rephrasing, or configure a chat API key."

// MaxHistory bounds the chat history kept for the fallback model.
const MaxHistory = 40

// ChatSettings select the fallback model and its tools.
type ChatSettings struct {
	Model       string
	UseSearch   bool
	UseThinking bool
}

// ConsoleDeps are the collaborators of the Console. Slots, Chat and Audit
// are optional.
type ConsoleDeps struct {
	Router  primary.RouterService
	Applier primary.ActionApplier
	State   Snapshotter
	Slots   secondary.SlotStore
	Chat    secondary.ChatFallback
	ChatCfg ChatSettings
	Audit   secondary.AuditLog
	Logger  *zap.Logger
}

// ConsoleImpl implements ConsoleService.
type ConsoleImpl struct {
	deps   ConsoleDeps
	logger *zap.Logger

	mu      sync.Mutex
	history []secondary.ChatMessage
}

// NewConsole creates a Console.
func NewConsole(deps ConsoleDeps) *ConsoleImpl {
	return &ConsoleImpl{deps: deps, logger: logging.OrNop(deps.Logger).Named("console")}
}

// Handle runs one command end to end: route, apply, persist, audit. An
// unmatched command is answered by the chat fallback, streamed to onChunk.
func (c *ConsoleImpl) Handle(ctx context.Context, req primary.Request, onChunk func(string)) (*primary.ConsoleResult, error) {
	if ctxutil.RequestIDFromContext(ctx) == "" {
		ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	}
	if ctxutil.ActorFromContext(ctx) == "" {
		ctx = ctxutil.WithActorID(ctx, req.User.ID)
	}

	resp := c.deps.Router.ProcessRequest(ctx, req)
	result := &primary.ConsoleResult{Response: resp}

	if resp.Text == "" && !resp.Remote {
		c.fallback(ctx, req, result, onChunk)
		c.audit(ctx, req, result)
		return result, nil
	}

	if len(resp.Actions) > 0 {
		applied, err := c.deps.Applier.Apply(ctx, resp.Actions)
		result.Applied = applied
		if err != nil {
			return result, fmt.Errorf("failed to apply actions: %w", err)
		}
	}
	if (result.Applied > 0 || resp.Mutated) && c.deps.Slots != nil {
		if err := SaveState(ctx, c.deps.Slots, c.deps.State); err != nil {
			return result, fmt.Errorf("failed to persist state: %w", err)
		}
	}

	c.remember(req.Text, resp.Text)
	c.audit(ctx, req, result)
	return result, nil
}

func (c *ConsoleImpl) fallback(ctx context.Context, req primary.Request, result *primary.ConsoleResult, onChunk func(string)) {
	result.Fallback = true
	if c.deps.Chat == nil {
		result.Text = OfflineChatText
		emit(onChunk, result.Text)
		return
	}

	history := append(c.History(), secondary.ChatMessage{Role: "user", Text: req.Text})
	var text strings.Builder
	seen := make(map[string]bool)

	err := c.deps.Chat.Stream(ctx, secondary.ChatRequest{
		History:     history,
		Model:       c.deps.ChatCfg.Model,
		UseSearch:   c.deps.ChatCfg.UseSearch,
		UseThinking: c.deps.ChatCfg.UseThinking,
	}, func(chunk secondary.ChatChunk) {
		text.WriteString(chunk.Text)
		emit(onChunk, chunk.Text)
		for _, cit := range chunk.Citations {
			if cit.URI == "" || seen[cit.URI] {
				continue
			}
			seen[cit.URI] = true
			result.Citations = append(result.Citations, cit)
		}
	})
	if err != nil {
		c.logger.Warn("chat fallback failed", zap.Error(err))
		result.Traces = append(result.Traces, effects.NewTrace(NodeOrchestrator, effects.StepError, effects.PersonaWorker,
			fmt.Sprintf("chat fallback failed: %v", err)))
		if text.Len() == 0 {
			result.Text = OfflineChatText
			return
		}
	}

	result.Text = text.String()
	c.remember(req.Text, result.Text)
}

func emit(onChunk func(string), s string) {
	if onChunk != nil && s != "" {
		onChunk(s)
	}
}

func (c *ConsoleImpl) audit(ctx context.Context, req primary.Request, result *primary.ConsoleResult) {
	if c.deps.Audit == nil {
		return
	}
	names := make([]string, len(result.Actions))
	for i, a := range result.Actions {
		names[i] = a.Name
	}
	record := secondary.AuditRecord{
		ID:         ctxutil.RequestIDFromContext(ctx),
		Timestamp:  time.Now().UTC(),
		ActorID:    ctxutil.ActorFromContext(ctx),
		Command:    req.Text,
		Rule:       result.Rule,
		Operation:  string(result.Operation),
		Denied:     result.Denied,
		Actions:    names,
		ErrorCount: effects.CountErrors(result.Traces),
	}
	if err := c.deps.Audit.Append(ctx, record); err != nil {
		c.logger.Warn("failed to append audit record", zap.Error(err))
	}
}

// AttachLive records every completed voice turn into the chat history.
func (c *ConsoleImpl) AttachLive(live secondary.LiveSession) {
	live.OnTurnComplete(c.remember)
}

func (c *ConsoleImpl) remember(userText, modelText string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if userText != "" {
		c.history = append(c.history, secondary.ChatMessage{Role: "user", Text: userText})
	}
	if modelText != "" {
		c.history = append(c.history, secondary.ChatMessage{Role: "model", Text: modelText})
	}
	if over := len(c.history) - MaxHistory; over > 0 {
		c.history = append([]secondary.ChatMessage(nil), c.history[over:]...)
	}
}

// History returns a copy of the chat history.
func (c *ConsoleImpl) History() []secondary.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]secondary.ChatMessage, len(c.history))
	copy(out, c.history)
	return out
}
