package effects

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Step classifies a trace entry.
type Step string

const (
	StepRouting       Step = "ROUTING"
	StepThinking      Step = "THINKING"
	StepPlanning      Step = "PLANNING"
	StepToolExecution Step = "TOOL_EXECUTION"
	StepCodeOutput    Step = "CODE_OUTPUT"
	StepOutput        Step = "OUTPUT"
	StepError         Step = "ERROR"
	StepAnalysis      Step = "ANALYSIS"
	StepFinalAnswer   Step = "FINAL_ANSWER"
)

// Persona is the voice a trace entry is attributed to.
type Persona string

const (
	PersonaOrchestrator Persona = "ORCHESTRATOR"
	PersonaExpert       Persona = "EXPERT"
	PersonaWorker       Persona = "WORKER"
)

// Trace is one audit entry.
type Trace struct {
	ID        string
	Timestamp time.Time
	Node      string
	Step      Step
	Content   string
	Persona   Persona
	IsError   bool
}

var now = time.Now

// NewTrace builds a trace entry stamped with the current time.
func NewTrace(node string, step Step, persona Persona, content string) Trace {
	return Trace{
		ID:        uuid.NewString(),
		Timestamp: now(),
		Node:      node,
		Step:      step,
		Content:   content,
		Persona:   persona,
		IsError:   step == StepError,
	}
}

// Outcome accumulates the traces and actions a skill produced for one node.
type Outcome struct {
	Node    string
	Actions []Action
	Traces  []Trace

	// Mutated is set when the skill wrote to the state store itself
	// rather than through an emitted action.
	Mutated bool
}

// NewOutcome starts an empty outcome for a node such as "ada.finance".
func NewOutcome(node string) *Outcome {
	return &Outcome{Node: node}
}

// Trace appends an entry attributed to the outcome's node.
func (o *Outcome) Trace(step Step, persona Persona, format string, args ...any) {
	o.Traces = append(o.Traces, NewTrace(o.Node, step, persona, fmt.Sprintf(format, args...)))
}

// Fail appends an ERROR entry from the worker persona.
func (o *Outcome) Fail(format string, args ...any) {
	o.Trace(StepError, PersonaWorker, format, args...)
}

// Emit appends an action and returns it.
func (o *Outcome) Emit(kind Kind, name string, params map[string]any) Action {
	a := NewAction(kind, name, params)
	o.Actions = append(o.Actions, a)
	return a
}

// MarkMutated records a direct state store write.
func (o *Outcome) MarkMutated() {
	o.Mutated = true
}

// Merge appends other's traces and actions in order.
func (o *Outcome) Merge(other *Outcome) {
	if other == nil {
		return
	}
	o.Traces = append(o.Traces, other.Traces...)
	o.Actions = append(o.Actions, other.Actions...)
	o.Mutated = o.Mutated || other.Mutated
}

// Result returns the outcome itself. Skill results embed an Outcome and
// expose it through this method.
func (o *Outcome) Result() *Outcome {
	return o
}

// ErrorCount returns the number of ERROR entries.
func (o *Outcome) ErrorCount() int {
	return CountErrors(o.Traces)
}

// CountErrors returns the number of ERROR entries in traces.
func CountErrors(traces []Trace) int {
	n := 0
	for _, t := range traces {
		if t.IsError {
			n++
		}
	}
	return n
}
