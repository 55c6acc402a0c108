package models

import "time"

// CandidateProfile is the canonical resume data for a user. PII fields
// (name, contact details, links, location) are stored here but are never
// serialized into AI prompts.
type CandidateProfile struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	UserID              string       `gorm:"index" json:"user_id"`
	FullName            string       `json:"full_name"`
	Title               string       `json:"title"`
	Email               string       `json:"email"`
	PhoneNumber         string       `json:"phone_number"`
	Location            string       `json:"location"`
	LinkedInURL         string       `json:"linkedin_url"`
	PortfolioURL        string       `json:"portfolio_url"`
	ProfessionalSummary string       `gorm:"type:text" json:"professional_summary"`
	Skills              []Skill      `gorm:"constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	WorkExperience      []Experience `gorm:"constraint:OnDelete:CASCADE" json:"work_experience,omitempty"`
	Educations          []Education  `gorm:"constraint:OnDelete:CASCADE" json:"educations,omitempty"`
	Projects            []Project    `gorm:"constraint:OnDelete:CASCADE" json:"projects,omitempty"`
	Languages           []Language   `gorm:"constraint:OnDelete:CASCADE" json:"languages,omitempty"`
	Interests           []Interest   `gorm:"constraint:OnDelete:CASCADE" json:"interests,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// Skill is a single named skill. Category groups related skills for display.
type Skill struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	CandidateProfileID uint   `gorm:"index" json:"-"`
	Name               string `json:"name"`
	Category           string `json:"category"`
}

// Experience is one work history entry
type Experience struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	CandidateProfileID uint   `gorm:"index" json:"-"`
	JobTitle           string `json:"job_title"`
	CompanyName        string `json:"company_name"`
	Location           string `json:"location"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	Description        string `gorm:"type:text" json:"description"`
}

// Education is one education entry
type Education struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	CandidateProfileID uint   `gorm:"index" json:"-"`
	Institution        string `json:"institution"`
	Degree             string `json:"degree"`
	FieldOfStudy       string `json:"field_of_study"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	Description        string `gorm:"type:text" json:"description"`
}

// Project is one portfolio project entry
type Project struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	CandidateProfileID uint   `gorm:"index" json:"-"`
	Name               string `json:"name"`
	Description        string `gorm:"type:text" json:"description"`
	URL                string `json:"url"`
	Technologies       string `json:"technologies"`
}

// Language is one spoken language entry
type Language struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	CandidateProfileID uint   `gorm:"index" json:"-"`
	Name               string `json:"name"`
	Proficiency        string `json:"proficiency"`
}

// Interest is one personal interest entry
type Interest struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	CandidateProfileID uint   `gorm:"index" json:"-"`
	Name               string `json:"name"`
}
