package models

import "time"

// DefaultJobTitle stands in when a page exposes no usable title
const DefaultJobTitle = "Imported Job"

// JobPosting represents a job posting normalized to markdown with the
// metadata the generation pipeline needs
type JobPosting struct {
	Title       string     `json:"title"`
	CompanyName string     `json:"company_name"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	DatePosted  *time.Time `json:"date_posted,omitempty"`
}

// NewJobPosting builds a posting from extracted fields, substituting the
// default title when none was found and stamping the fetch time
func NewJobPosting(title, companyName, description, url string) *JobPosting {
	if title == "" {
		title = DefaultJobTitle
	}
	now := time.Now()
	return &JobPosting{
		Title:       title,
		CompanyName: companyName,
		Description: description,
		URL:         url,
		DatePosted:  &now,
	}
}

// HasMetadata reports whether the fetcher managed to identify the posting
func (j *JobPosting) HasMetadata() bool {
	return (j.Title != "" && j.Title != DefaultJobTitle) || j.CompanyName != ""
}
