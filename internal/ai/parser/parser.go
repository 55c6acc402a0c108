package parser

import (
	"encoding/json"
	"strings"

	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// tailoredResumeEnvelope mirrors the JSON structure the resume prompt asks
// for. encoding/json matches field names case-insensitively, which covers
// models that lowercase the keys.
type tailoredResumeEnvelope struct {
	DetectedJobDetails *detectedJobDetails `json:"DetectedJobDetails"`
	TailoredProfile    *tailoredProfile    `json:"TailoredProfile"`
}

type detectedJobDetails struct {
	CompanyName string `json:"CompanyName"`
	JobTitle    string `json:"JobTitle"`
}

type tailoredProfile struct {
	Title               string       `json:"Title"`
	ProfessionalSummary string       `json:"ProfessionalSummary"`
	Skills              []skillGroup `json:"Skills"`
}

type skillGroup struct {
	Category string   `json:"Category"`
	Names    []string `json:"Names"`
}

// Outcome is the result of parsing with the degradation policy applied
type Outcome struct {
	Result   *models.TailoredResumeResult
	Degraded bool
	Err      error
}

// ParseTailoredResume parses raw model output into a TailoredResumeResult.
// Markdown code fences are tolerated. PII, the professional summary and the
// static sections (experience, education, projects, languages, interests)
// always come from the original profile; the model only contributes the
// title, the skill grouping and the detected job details.
func ParseTailoredResume(raw string, original *models.CandidateProfile, job *models.JobPosting) (*models.TailoredResumeResult, error) {
	clean := StripCodeFences(raw)

	var envelope tailoredResumeEnvelope
	if err := json.Unmarshal([]byte(clean), &envelope); err != nil {
		return nil, utils.NewParseError(raw, err)
	}

	result := &models.TailoredResumeResult{}
	if envelope.DetectedJobDetails != nil {
		result.DetectedCompanyName = envelope.DetectedJobDetails.CompanyName
		result.DetectedJobTitle = envelope.DetectedJobDetails.JobTitle
	}
	if job != nil {
		if result.DetectedJobTitle == "" {
			result.DetectedJobTitle = job.Title
		}
		if result.DetectedCompanyName == "" {
			result.DetectedCompanyName = job.CompanyName
		}
	}

	if envelope.TailoredProfile == nil {
		result.Profile = *original
		return result, nil
	}

	profile := *original
	if envelope.TailoredProfile.Title != "" {
		profile.Title = envelope.TailoredProfile.Title
	}
	if skills := flattenSkills(envelope.TailoredProfile.Skills); skills != nil {
		profile.Skills = skills
	}

	result.Profile = profile
	return result, nil
}

// ParseWithFallback applies the degradation policy: a parse failure yields
// the untouched original profile with job details from the posting, flagged
// as degraded, instead of an error that would sink the whole application.
func ParseWithFallback(raw string, original *models.CandidateProfile, job *models.JobPosting) Outcome {
	result, err := ParseTailoredResume(raw, original, job)
	if err == nil {
		return Outcome{Result: result}
	}

	fallback := &models.TailoredResumeResult{Profile: *original}
	if job != nil {
		fallback.DetectedJobTitle = job.Title
		fallback.DetectedCompanyName = job.CompanyName
	}
	return Outcome{Result: fallback, Degraded: true, Err: err}
}

// flattenSkills turns grouped skills into the flat per-skill representation.
// Missing categories default to "General"; blank names are dropped.
func flattenSkills(groups []skillGroup) []models.Skill {
	if groups == nil {
		return nil
	}

	var skills []models.Skill
	for _, group := range groups {
		category := strings.TrimSpace(group.Category)
		if category == "" {
			category = "General"
		}
		for _, name := range group.Names {
			if strings.TrimSpace(name) == "" {
				continue
			}
			skills = append(skills, models.Skill{Name: name, Category: category})
		}
	}
	return skills
}

// StripCodeFences removes markdown code fences that models often wrap JSON in
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
