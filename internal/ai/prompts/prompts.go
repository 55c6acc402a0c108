package prompts

import (
	"fmt"
	"strings"
	"time"

	"webcv-utils/pkg/models"
)

// Task selects which kind of document the prompt asks for
type Task string

const (
	TaskCoverLetter Task = "cover_letter"
	TaskResume      Task = "resume"
)

const (
	coverLetterSystemPrompt = "You are a professional career coach and expert copywriter. " +
		"Your goal is to write a compelling, professional, and tailored cover letter " +
		"based on the candidate's profile and the job description provided."

	resumeSystemPrompt = "You are a professional career coach and expert copywriter. " +
		"Your goal is to rewrite the candidate's CV to highlight experience relevant to this specific job. " +
		"You MUST return the result as a valid JSON object matching the CandidateProfile structure."
)

// System returns the fixed system prompt for the task
func System(task Task) string {
	if task == TaskResume {
		return resumeSystemPrompt
	}
	return coverLetterSystemPrompt
}

// Build produces the user prompt for the task. The profile section never
// includes PII; the candidate's name appears only in the cover-letter
// sign-off instruction.
func Build(profile *models.CandidateProfile, job *models.JobPosting, task Task) string {
	return BuildAt(profile, job, task, time.Now())
}

// BuildAt is Build with an explicit clock
func BuildAt(profile *models.CandidateProfile, job *models.JobPosting, task Task, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Job Title: %s\n", job.Title)
	fmt.Fprintf(&sb, "Company: %s\n", job.CompanyName)
	fmt.Fprintf(&sb, "Job URL: %s\n", job.URL)
	fmt.Fprintf(&sb, "Job Description: %s\n", job.Description)
	fmt.Fprintf(&sb, "Current Date: %s\n", now.Format("January 02, 2006"))
	sb.WriteString("\n")

	writeProfile(&sb, profile)
	sb.WriteString("\n")

	if task == TaskResume {
		writeResumeInstructions(&sb)
	} else {
		writeCoverLetterInstructions(&sb, profile.FullName)
	}

	return sb.String()
}

// writeProfile renders the candidate without name, contact details, links
// or location
func writeProfile(sb *strings.Builder, profile *models.CandidateProfile) {
	sb.WriteString("Candidate Profile:\n")
	fmt.Fprintf(sb, "Professional Summary: %s\n", profile.ProfessionalSummary)

	if len(profile.Skills) > 0 {
		names := make([]string, 0, len(profile.Skills))
		for _, s := range profile.Skills {
			names = append(names, s.Name)
		}
		fmt.Fprintf(sb, "Skills: %s\n", strings.Join(names, ", "))
	}

	if len(profile.WorkExperience) > 0 {
		sb.WriteString("Work Experience:\n")
		for _, exp := range profile.WorkExperience {
			end := exp.EndDate
			if end == "" {
				end = "Present"
			}
			fmt.Fprintf(sb, "- %s at %s (%s - %s)\n", exp.JobTitle, exp.CompanyName, exp.StartDate, end)
			fmt.Fprintf(sb, "  %s\n", exp.Description)
		}
	}

	if len(profile.Educations) > 0 {
		sb.WriteString("Education:\n")
		for _, edu := range profile.Educations {
			fmt.Fprintf(sb, "- %s from %s (%s - %s)\n", edu.Degree, edu.Institution, edu.StartDate, edu.EndDate)
		}
	}
}

func writeResumeInstructions(sb *strings.Builder) {
	sb.WriteString("IMPORTANT: DO NOT USE EM-DASHES IN THE JSON. ONLY USE HYPHENS (-).\n")
	sb.WriteString("CRITICAL: Return the result as a valid JSON object matching the following structure.\n")
	sb.WriteString("Do NOT include personal contact details (Name, Email, Phone, etc.) in the JSON. Only return the tailored content.\n")
	sb.WriteString("IMPORTANT: Analyze the job description to extract the true Company Name and Job Title.\n")
	sb.WriteString("Include ALL skills from the candidate's profile. Organize them into relevant categories for this job, placing the most important ones at the top.\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"DetectedJobDetails\": { \"CompanyName\": \"...\", \"JobTitle\": \"...\" },\n")
	sb.WriteString("  \"TailoredProfile\": { \"Title\": \"...\", \"Skills\": [ { \"Category\": \"...\", \"Names\": [\"...\"] } ] }\n")
	sb.WriteString("}\n")
	sb.WriteString("Ensure 'Description' fields use HTML <li> tags for bullet points.\n")
}

func writeCoverLetterInstructions(sb *strings.Builder, fullName string) {
	sb.WriteString("IMPORTANT: Return the result as PLAIN TEXT. Do NOT use JSON or Markdown code blocks.\n")
	sb.WriteString("Write a professional cover letter.\n")
	sb.WriteString("TONE: Adopt a professional tone suitable for Danish/Scandinavian business culture: Direct, concise, humble but confident, and focused on the value the candidate brings to the company.\n")
	sb.WriteString("CRITICAL INSTRUCTIONS:\n")
	sb.WriteString("1. Do NOT include the CANDIDATE'S contact header (Name, Email, Phone). This is added automatically.\n")
	sb.WriteString("2. DO include the CURRENT DATE (as provided above) and the COMPANY'S details at the top.\n")
	sb.WriteString("3. Include a professional, concise SUBJECT line (e.g., 'RE: Application for [Job Title]'). Do NOT clutter the subject with the source.\n")
	sb.WriteString("4. Start with a professional salutation (e.g., 'Dear Hiring Manager,' or 'Dear [Name],').\n")
	sb.WriteString("5. Write the body of the letter. CRITICAL: In the VERY FIRST sentence, explicitly mention where the job was found based on the Job URL (e.g., '...as advertised on LinkedIn', '...on Indeed', or '...on your company website'). If no URL is provided, use '...as advertised'.\n")
	fmt.Fprintf(sb, "6. End with 'Sincerely,' followed by the candidate's name: %s.\n", fullName)
	sb.WriteString("7. Do NOT use placeholders like '[Your Name]', '[Your Address]'.\n")
}
