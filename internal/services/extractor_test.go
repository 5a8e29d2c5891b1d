package services

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestExtractSkillsFromJobDescription(t *testing.T) {
	extractor := NewExtractorService("")

	skills := extractor.ExtractSkills("Looking for a Python developer with Django experience")

	want := []string{"django", "python"}
	if got := skills.Sorted(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractSkills() = %v, want %v", got, want)
	}
}

func TestExtractSkillsWordBoundaries(t *testing.T) {
	extractor := NewExtractorService("")

	// "go" must not be recognized inside "django", nor "java" inside
	// "javascript".
	skills := extractor.ExtractSkills("Senior Django and JavaScript position")

	if !skills.Has("django") || !skills.Has("javascript") {
		t.Fatalf("expected django and javascript, got %v", skills.Sorted())
	}
	if skills.Has("go") {
		t.Fatalf("matched 'go' inside 'django': %v", skills.Sorted())
	}
	if skills.Has("java") {
		t.Fatalf("matched 'java' inside 'javascript': %v", skills.Sorted())
	}
}

func TestExtractSkillsEmptyInput(t *testing.T) {
	extractor := NewExtractorService("")

	for _, text := range []string{"", "   ", "\n\t\n"} {
		skills := extractor.ExtractSkills(text)
		if skills.Len() != 0 {
			t.Fatalf("ExtractSkills(%q) = %v, want empty", text, skills.Sorted())
		}
	}
}

func TestExtractSkillsIdempotent(t *testing.T) {
	extractor := NewExtractorService("")
	text := "Hiring a Full-stack developer with Node.js, MongoDB, and Angular."

	first := extractor.ExtractSkills(text).Sorted()
	second := extractor.ExtractSkills(text).Sorted()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction is not idempotent: %v vs %v", first, second)
	}
	if len(first) == 0 {
		t.Fatal("expected some skills to be extracted")
	}
}

func TestExtract(t *testing.T) {
	extractor := NewExtractorService("")
	text := "Backend Developer experienced with Python, Flask, and PostgreSQL needed."

	result := extractor.Extract(text)

	if result.TextBytes != len(text) {
		t.Fatalf("TextBytes = %d, want %d", result.TextBytes, len(text))
	}
	for _, skill := range []string{"python", "flask", "postgresql"} {
		if !result.Skills.Has(skill) {
			t.Fatalf("missing %q in %v", skill, result.Skills.Sorted())
		}
	}
}

func TestExtractorFallsBackToGenericRecognizer(t *testing.T) {
	extractor := NewExtractorService("/nonexistent/lexicon.txt")

	skills := extractor.ExtractSkills("Experience with Python and AWS required")

	if !skills.Has("python") || !skills.Has("aws") {
		t.Fatalf("generic fallback missed capitalized terms: %v", skills.Sorted())
	}
}

func TestLexiconRecognizerCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.txt")
	content := "# custom vocabulary\nfortran\ncobol\n\nfortran\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write lexicon: %v", err)
	}

	extractor := NewExtractorService(path)
	skills := extractor.ExtractSkills("Maintaining FORTRAN and COBOL systems")

	want := []string{"cobol", "fortran"}
	if got := skills.Sorted(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractSkills() = %v, want %v", got, want)
	}
}

func TestGenericRecognizerTokens(t *testing.T) {
	recognizer := genericRecognizer{}

	entities := recognizer.Entities("we deploy go services with C# and jQuery daily")

	labels := map[string]bool{}
	for _, entity := range entities {
		labels[strings.ToLower(entity.Text)] = true
	}

	if !labels["c#"] {
		t.Fatalf("expected C# to be recognized, got %v", entities)
	}
	if !labels["jquery"] {
		t.Fatalf("expected jQuery to be recognized, got %v", entities)
	}
	if labels["daily"] {
		t.Fatalf("lowercase word recognized as entity: %v", entities)
	}
}
