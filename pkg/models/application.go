package models

import "time"

// TailoredResumeResult is the parsed outcome of a resume tailoring call:
// the rewritten profile plus the job details the model detected
type TailoredResumeResult struct {
	Profile             CandidateProfile `json:"profile"`
	DetectedJobTitle    string           `json:"detected_job_title"`
	DetectedCompanyName string           `json:"detected_company_name"`
}

// GeneratedApplication is a persisted cover letter + tailored resume pair
type GeneratedApplication struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"index" json:"user_id"`
	JobTitle       string    `json:"job_title"`
	CompanyName    string    `json:"company_name"`
	JobURL         string    `json:"job_url"`
	Model          string    `json:"model"`
	CoverLetter    string    `gorm:"type:text" json:"cover_letter"`
	TailoredResume string    `gorm:"type:text" json:"tailored_resume"`
	Degraded       bool      `json:"degraded"`
	CreatedAt      time.Time `json:"created_at"`
}
