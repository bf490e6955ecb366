package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContacts(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		phones []string
		emails []string
	}{
		{
			name:   "empty body",
			body:   "",
			phones: []string{},
			emails: []string{},
		},
		{
			name:   "international phone and address",
			body:   "Call me on +44 20 7946 0958 or write to jane.doe@example.com.",
			phones: []string{"+44 20 7946 0958"},
			emails: []string{"jane.doe@example.com."},
		},
		{
			name:   "duplicates preserved in order",
			body:   "555-123-4567 then a@b.io then 555-123-4567 and c-d@e.org",
			phones: []string{"555-123-4567", "555-123-4567"},
			emails: []string{"a@b.io", "c-d@e.org"},
		},
		{
			name:   "non-ascii address",
			body:   "write to josé@exämple.com please",
			phones: []string{},
			emails: []string{"josé@exämple.com"},
		},
		{
			name:   "short digit runs ignored",
			body:   "order 12345 shipped",
			phones: []string{},
			emails: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractContacts(tt.body)
			assert.Equal(t, tt.phones, got.Phones)
			assert.Equal(t, tt.emails, got.Emails)
		})
	}
}

func TestExtractContactsNeverExceedsRawMatches(t *testing.T) {
	bodies := []string{
		"",
		"+1 800 555 0199 +1 800 555 0199",
		"x@y z@w..q@@r",
		"1234567890123456789012345",
	}
	for _, body := range bodies {
		got := ExtractContacts(body)
		assert.LessOrEqual(t, len(got.Phones), len(phonePattern.FindAllString(body, -1)))
		assert.LessOrEqual(t, len(got.Emails), len(emailPattern.FindAllString(body, -1)))
	}
}
