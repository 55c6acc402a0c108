package ai

import (
	"fmt"

	"webcv-utils/pkg/models"
)

// coverLetterDiagnostic replaces the letter text when generation fails.
// Returned with a nil error so the resume half of an application survives.
func coverLetterDiagnostic(provider models.AIProvider, err error) string {
	return fmt.Sprintf("Cover letter generation failed (provider %s): %v. Please try again or switch to a different model.", provider, err)
}
