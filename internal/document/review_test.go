package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewMessage(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{"address mismatch", "Your application has been placed in review pending outstanding address verification for FICA purposes."},
		{"bank details incorrect", "Your application has been placed in review pending outstanding bank account verification."},
		{"flagged", "Your application has been placed in review because of suspicious account behaviour. Please contact support ASAP."},
		{"bank and address both wrong", "Your application has been placed in review pending outstanding address verification for FICA purposes."},
		{"Address proof missing", "Your application has been placed in review because of suspicious account behaviour. Please contact support ASAP."},
		{"BANK", "Your application has been placed in review because of suspicious account behaviour. Please contact support ASAP."},
		{"", "Your application has been placed in review because of suspicious account behaviour. Please contact support ASAP."},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.want, ReviewMessage(tt.reason))
		})
	}
}
