// Package primary defines the driving ports: the console entry point and
// the skill services it dispatches to.
package primary

import (
	"context"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/secondary"
)

// Request is one operator command.
type Request struct {
	Text string
	User models.UserProfile
}

// Response is everything the console produced for a command.
// An empty Text means no rule matched and the chat fallback should answer.
type Response struct {
	Text      string
	Actions   []effects.Action
	Traces    []effects.Trace
	Rule      string
	Operation access.Operation
	Denied    bool
	Remote    bool

	// Mutated reports that a skill changed the state store directly.
	Mutated bool
}

// RouterService classifies commands and dispatches them to skills.
type RouterService interface {
	ProcessRequest(ctx context.Context, req Request) *Response
}

// ConsoleResult is a handled command after actions were applied.
type ConsoleResult struct {
	*Response
	Applied   int
	Citations []secondary.Citation
	Fallback  bool
}

// ConsoleService is the caller side of the router: it applies actions,
// persists state and falls back to chat.
type ConsoleService interface {
	Handle(ctx context.Context, req Request, onChunk func(string)) (*ConsoleResult, error)
}

// ActionApplier applies emitted actions to the state store.
type ActionApplier interface {
	Apply(ctx context.Context, actions []effects.Action) (int, error)
}
