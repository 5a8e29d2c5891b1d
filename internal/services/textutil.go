package services

// Bounded prefixes kept when persisting free text. Full texts are still
// used for scoring; only what is stored is capped.
const (
	// ResumeTextLimit caps the resume text snapshot stored on a
	// candidate profile.
	ResumeTextLimit = 50000
	// JobExcerptLimit caps the job-description excerpt kept on a
	// comparison record.
	JobExcerptLimit = 2000
)

// TruncateRunes returns at most max runes of s without splitting a
// multi-byte character.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
