package document

import "strings"

const reviewMessagePrefix = "Your application has been placed in review"

// ReviewMessage explains an in-review application to the applicant.
// Matching is case-sensitive and "address" takes precedence over "bank".
func ReviewMessage(reason string) string {
	switch {
	case strings.Contains(reason, "address"):
		return reviewMessagePrefix + " pending outstanding address verification for FICA purposes."
	case strings.Contains(reason, "bank"):
		return reviewMessagePrefix + " pending outstanding bank account verification."
	default:
		return reviewMessagePrefix + " because of suspicious account behaviour. Please contact support ASAP."
	}
}
