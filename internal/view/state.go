package view

import "legaldraft/drafter/internal/models"

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseResult     Phase = "result"
	PhaseError      Phase = "error"
)

// State is everything the client displays. Only one of loading, result and
// error is active at a time, as selected by Phase.
type State struct {
	Phase        Phase                    `json:"phase"`
	Prompt       string                   `json:"prompt"`
	DocumentType string                   `json:"document_type,omitempty"`
	RequestID    string                   `json:"request_id,omitempty"`
	Result       *models.GenerationResult `json:"result,omitempty"`
	Error        string                   `json:"error,omitempty"`
}

func (s State) Loading() bool {
	return s.Phase == PhaseSubmitting
}

// CanSubmit mirrors the disabled state of the generate trigger
func (s State) CanSubmit() bool {
	return !s.Loading() && !models.IsBlankPrompt(s.Prompt)
}

func (s State) CanDownload() bool {
	return s.Phase == PhaseResult && s.Result != nil
}

type Event interface {
	isEvent()
}

// PromptChanged is allowed in every phase; the input stays editable while in flight
type PromptChanged struct {
	Prompt       string
	DocumentType string
}

type SubmitStarted struct {
	RequestID string
}

type SubmitSucceeded struct {
	RequestID string
	Result    *models.GenerationResult
}

type SubmitFailed struct {
	RequestID string
	Message   string
}

func (PromptChanged) isEvent()   {}
func (SubmitStarted) isEvent()   {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}

// Reduce returns the state after applying e. Completions are only accepted for
// the submission currently in flight.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case PromptChanged:
		s.Prompt = ev.Prompt
		s.DocumentType = ev.DocumentType

	case SubmitStarted:
		if !s.CanSubmit() {
			return s
		}
		s.Phase = PhaseSubmitting
		s.RequestID = ev.RequestID
		s.Result = nil
		s.Error = ""

	case SubmitSucceeded:
		if !s.Loading() || ev.RequestID != s.RequestID || ev.Result == nil {
			return s
		}
		s.Phase = PhaseResult
		s.Result = ev.Result

	case SubmitFailed:
		if !s.Loading() || ev.RequestID != s.RequestID {
			return s
		}
		s.Phase = PhaseError
		s.Error = ev.Message
		if s.Error == "" {
			s.Error = models.GenericFailureMessage
		}
	}
	return s
}
