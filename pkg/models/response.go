package models

import "time"

// FetchJobResponse represents the response from a job fetch request
type FetchJobResponse struct {
	Success        bool          `json:"success"`
	Job            *JobPosting   `json:"job,omitempty"`
	Error          string        `json:"error,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	Engine         string        `json:"engine_used"`
	Cached         bool          `json:"cached"`
	RequestID      string        `json:"request_id"`
}

// GenerateApplicationResponse represents the response from an application
// generation request
type GenerateApplicationResponse struct {
	Success        bool                  `json:"success"`
	CoverLetter    string                `json:"cover_letter,omitempty"`
	Resume         *TailoredResumeResult `json:"resume,omitempty"`
	Degraded       bool                  `json:"degraded"`
	ApplicationID  string                `json:"application_id,omitempty"`
	Model          string                `json:"model"`
	Error          string                `json:"error,omitempty"`
	ProcessingTime time.Duration         `json:"processing_time"`
	RequestID      string                `json:"request_id"`
}

// ModelsResponse lists the models currently available for generation
type ModelsResponse struct {
	Models    []ModelInfo `json:"models"`
	RequestID string      `json:"request_id"`
}

// ModelInfo describes one selectable model
type ModelInfo struct {
	Model    AIModel    `json:"model"`
	Provider AIProvider `json:"provider"`
	Local    bool       `json:"local"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewErrorResponse builds the standard error envelope
func NewErrorResponse(code, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	}
}
