package core

import "regexp"

var (
	phonePattern = regexp.MustCompile(`\+?\d[\d\s\-]{7,}\d`)
	emailPattern = regexp.MustCompile(`[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+`)
)

// ExtractContacts scans a body for phone numbers and email addresses.
// Matches keep their order of appearance and duplicates are preserved.
func ExtractContacts(body string) ContactInfo {
	return ContactInfo{
		Phones: findAll(phonePattern, body),
		Emails: findAll(emailPattern, body),
	}
}

func findAll(re *regexp.Regexp, s string) []string {
	matches := re.FindAllString(s, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
