package models

// GenerationResult describes a successfully produced document and where to
// retrieve it. Metadata is passed through untouched.
type GenerationResult struct {
	Success      bool                   `json:"success"`
	Message      string                 `json:"message"`
	DocumentType string                 `json:"document_type"`
	FilePath     string                 `json:"file_path"`
	DownloadURL  string                 `json:"download_url"`
	Metadata     map[string]interface{} `json:"metadata"`
}

// failure body returned by the generation service; only a string detail is shown
type ErrorBody struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
}

// DetailText returns the detail field when it is a non-empty string
func (b ErrorBody) DetailText() string {
	if s, ok := b.Detail.(string); ok {
		return s
	}
	return ""
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type TemplateList struct {
	Success   bool     `json:"success"`
	Templates []string `json:"templates"`
	Count     int      `json:"count"`
}

type ServiceInfo struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}
