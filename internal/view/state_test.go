package view

import (
	"testing"

	"legaldraft/drafter/internal/models"
)

func TestReduce_StartRequiresPrompt(t *testing.T) {
	s := Reduce(State{Phase: PhaseIdle}, SubmitStarted{RequestID: "a"})
	if s.Phase != PhaseIdle {
		t.Fatalf("expected idle, got %s", s.Phase)
	}
}

func TestReduce_FullCycle(t *testing.T) {
	s := State{Phase: PhaseIdle}
	s = Reduce(s, PromptChanged{Prompt: "Draft an NDA"})
	s = Reduce(s, SubmitStarted{RequestID: "a"})
	if !s.Loading() {
		t.Fatal("expected loading after start")
	}

	s = Reduce(s, SubmitFailed{RequestID: "a", Message: "invalid prompt"})
	if s.Phase != PhaseError || s.Error != "invalid prompt" || s.Result != nil {
		t.Fatalf("unexpected state after failure: %+v", s)
	}

	s = Reduce(s, SubmitStarted{RequestID: "b"})
	if s.Phase != PhaseSubmitting || s.Error != "" {
		t.Fatalf("expected error cleared on new submission: %+v", s)
	}

	s = Reduce(s, SubmitSucceeded{RequestID: "b", Result: &models.GenerationResult{DocumentType: "nda"}})
	if s.Phase != PhaseResult || s.Result == nil || s.Error != "" {
		t.Fatalf("unexpected state after success: %+v", s)
	}
}

func TestReduce_IgnoresStaleCompletion(t *testing.T) {
	s := Reduce(State{Prompt: "x"}, SubmitStarted{RequestID: "current"})

	stale := Reduce(s, SubmitFailed{RequestID: "old", Message: "late"})
	if stale.Phase != PhaseSubmitting || stale.Error != "" {
		t.Fatalf("stale failure must be ignored: %+v", stale)
	}

	done := Reduce(s, SubmitSucceeded{RequestID: "current", Result: &models.GenerationResult{}})
	again := Reduce(done, SubmitFailed{RequestID: "current", Message: "dup"})
	if again.Phase != PhaseResult || again.Error != "" {
		t.Fatalf("completion after completion must be ignored: %+v", again)
	}
}

func TestReduce_StartWhileInFlightIsIgnored(t *testing.T) {
	s := Reduce(State{Prompt: "x"}, SubmitStarted{RequestID: "first"})
	s = Reduce(s, SubmitStarted{RequestID: "second"})
	if s.RequestID != "first" {
		t.Fatalf("expected first submission to stay active, got %s", s.RequestID)
	}
}

func TestReduce_EmptyFailureMessageFallsBack(t *testing.T) {
	s := Reduce(State{Prompt: "x"}, SubmitStarted{RequestID: "a"})
	s = Reduce(s, SubmitFailed{RequestID: "a"})
	if s.Error != models.GenericFailureMessage {
		t.Fatalf("expected generic message, got %q", s.Error)
	}
}
