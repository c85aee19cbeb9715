package secondary

import "context"

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role string // "user" or "model"
	Text string
}

// ChatRequest asks the fallback model for a reply.
type ChatRequest struct {
	History     []ChatMessage
	Model       string
	UseSearch   bool
	UseThinking bool
}

// Citation is a grounding source attached to a reply.
type Citation struct {
	URI   string
	Title string
}

// ChatChunk is one streamed piece of a reply.
type ChatChunk struct {
	Text      string
	Citations []Citation
}

// ChatFallback is the general-purpose model used when no intent rule matches.
type ChatFallback interface {
	Stream(ctx context.Context, req ChatRequest, onChunk func(ChatChunk)) error
}

// LiveStatus is the state of a voice session.
type LiveStatus string

const (
	LiveDisconnected LiveStatus = "disconnected"
	LiveConnecting   LiveStatus = "connecting"
	LiveConnected    LiveStatus = "connected"
	LiveError        LiveStatus = "error"
)

// LiveSession is a bidirectional voice session.
type LiveSession interface {
	Status() LiveStatus

	// OnTurnComplete registers a callback for each finished exchange.
	OnTurnComplete(fn func(userText, modelText string))
}
