package models

import "strings"

// GenerationRequest is the draft request sent to POST /draft-document.
// Details is always serialised as an empty object.
type GenerationRequest struct {
	Prompt          string                 `json:"prompt"`
	DocumentType    string                 `json:"document_type,omitempty"`
	IncludeMetadata bool                   `json:"include_metadata"`
	Details         map[string]interface{} `json:"details"`
}

// NewGenerationRequest builds the fixed payload for a prompt
func NewGenerationRequest(prompt, documentType string) GenerationRequest {
	return GenerationRequest{
		Prompt:          prompt,
		DocumentType:    strings.TrimSpace(documentType),
		IncludeMetadata: true,
		Details:         map[string]interface{}{},
	}
}

// IsBlankPrompt reports whether a prompt is empty after trimming whitespace
func IsBlankPrompt(prompt string) bool {
	return strings.TrimSpace(prompt) == ""
}

// body of the console's submit and prompt endpoints
type PromptRequest struct {
	Prompt       *string `json:"prompt"`
	DocumentType string  `json:"document_type,omitempty"`
}

// implements the middleware Validator interface
func (r *PromptRequest) Validate() error {
	if r.Prompt != nil && len(*r.Prompt) > MaxPromptLength {
		return &ErrorResponse{
			Code:    "prompt_too_long",
			Message: "Prompt exceeds the maximum length",
		}
	}
	if strings.ContainsAny(r.DocumentType, "/\\ ") {
		return &ErrorResponse{
			Code:    "invalid_document_type",
			Message: "Document type must be a template name",
		}
	}
	return nil
}
