package prompts

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"webcv-utils/pkg/models"
)

func testProfile() *models.CandidateProfile {
	return &models.CandidateProfile{
		FullName:            "Jane Jensen",
		Email:               "jane@example.com",
		PhoneNumber:         "+45 12 34 56 78",
		Location:            "Copenhagen",
		LinkedInURL:         "https://linkedin.com/in/janejensen",
		PortfolioURL:        "https://janejensen.dev",
		ProfessionalSummary: "Backend engineer.",
		Skills:              []models.Skill{{Name: "Go"}, {Name: "PostgreSQL"}},
		WorkExperience: []models.Experience{
			{JobTitle: "Engineer", CompanyName: "Acme", StartDate: "2019", EndDate: "", Description: "Built services."},
		},
		Educations: []models.Education{
			{Institution: "DTU", Degree: "MSc", StartDate: "2012", EndDate: "2014"},
		},
	}
}

func testJob() *models.JobPosting {
	return &models.JobPosting{
		Title:       "Senior Backend Engineer",
		CompanyName: "Initech",
		URL:         "https://www.linkedin.com/jobs/view/123",
		Description: "We need a Go engineer.",
	}
}

func TestProfileSectionExcludesPII(t *testing.T) {
	profile := testProfile()

	for _, task := range []Task{TaskResume, TaskCoverLetter} {
		prompt := Build(profile, testJob(), task)

		assert.NotContains(t, prompt, profile.Email)
		assert.NotContains(t, prompt, profile.PhoneNumber)
		assert.NotContains(t, prompt, profile.Location)
		assert.NotContains(t, prompt, profile.LinkedInURL)
		assert.NotContains(t, prompt, profile.PortfolioURL)
	}
}

func TestCoverLetterNameOnlyInSignOff(t *testing.T) {
	prompt := Build(testProfile(), testJob(), TaskCoverLetter)

	assert.Contains(t, prompt, "Sincerely,")
	assert.Contains(t, prompt, "Jane Jensen")

	profileSection := prompt[:strings.Index(prompt, "CRITICAL INSTRUCTIONS")]
	assert.NotContains(t, profileSection, "Jane Jensen", "name must not leak into the profile section")
}

func TestResumePromptExcludesNameEntirely(t *testing.T) {
	prompt := Build(testProfile(), testJob(), TaskResume)
	assert.NotContains(t, prompt, "Jane Jensen")
}

func TestBuildAtIsDeterministic(t *testing.T) {
	now := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

	a := BuildAt(testProfile(), testJob(), TaskResume, now)
	b := BuildAt(testProfile(), testJob(), TaskResume, now)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "Current Date: March 05, 2026")
}

func TestJobHeaderFields(t *testing.T) {
	prompt := Build(testProfile(), testJob(), TaskResume)

	assert.Contains(t, prompt, "Job Title: Senior Backend Engineer")
	assert.Contains(t, prompt, "Company: Initech")
	assert.Contains(t, prompt, "Job URL: https://www.linkedin.com/jobs/view/123")
	assert.Contains(t, prompt, "Job Description: We need a Go engineer.")
}

func TestResumeInstructionsAskForEnvelope(t *testing.T) {
	prompt := Build(testProfile(), testJob(), TaskResume)

	assert.Contains(t, prompt, `"DetectedJobDetails"`)
	assert.Contains(t, prompt, `"TailoredProfile"`)
	assert.Contains(t, prompt, "Include ALL skills")
	assert.NotContains(t, prompt, "Sincerely,")
}

func TestCoverLetterInstructionsAskForPlainText(t *testing.T) {
	prompt := Build(testProfile(), testJob(), TaskCoverLetter)

	assert.Contains(t, prompt, "PLAIN TEXT")
	assert.Contains(t, prompt, "SUBJECT line")
	assert.NotContains(t, prompt, `"TailoredProfile"`)
}

func TestOngoingExperienceRendersPresent(t *testing.T) {
	prompt := Build(testProfile(), testJob(), TaskResume)
	assert.Contains(t, prompt, "(2019 - Present)")
}

func TestSystemPromptsDifferByTask(t *testing.T) {
	assert.NotEqual(t, System(TaskCoverLetter), System(TaskResume))
	assert.Contains(t, System(TaskResume), "JSON")
	assert.NotContains(t, System(TaskCoverLetter), "JSON")
}
