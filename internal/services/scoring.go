package services

import (
	"math"
	"regexp"
	"strings"
)

// Policy names for the success-rate blend.
const (
	PolicySemantic = "semantic"
	PolicyCoverage = "coverage"
)

// Blend constants for the semantic-logistic policy. The logistic curve
// is centered at z=0.55 with steepness 4; with zero skill coverage the
// success rate is capped so a purely semantic match cannot report a
// high chance of success.
const (
	semanticMatchWeight   = 0.65
	coverageMatchWeight   = 0.35
	semanticSuccessWeight = 0.7
	coverageSuccessWeight = 0.3
	logisticMidpoint      = 0.55
	logisticSteepness     = 4.0
	zeroCoverageCap       = 15.0
)

// Jaccard returns the symmetric overlap between two skill sets scaled
// to [0,100]. Either set being empty yields 0.
func Jaccard(a, b SkillSet) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return 0.0
	}
	inter := a.Intersect(b).Len()
	union := a.Union(b).Len()
	return float64(inter) / float64(union) * 100.0
}

// Coverage returns the fraction of required terms present in held, in
// [0,1]. This is directional: Coverage(required, held) asks how much of
// the requirement the candidate satisfies, not the reverse. An empty
// required set yields 0.
func Coverage(required, held SkillSet) float64 {
	if required.Len() == 0 {
		return 0.0
	}
	return float64(required.Intersect(held).Len()) / float64(required.Len())
}

// requiredBlockPattern finds a "required/requirements/must-have" section
// header at a line start and captures up to the next blank line, end of
// text, or a sibling section header. Best-effort: arbitrary formatting
// will produce missed sections, which callers treat as "no block".
var requiredBlockPattern = regexp.MustCompile(
	`(?is)(?:^|\n)[ \t]*(?:required|requirements|must[- ]have)[ \t]*:(.*?)(?:\n[ \t]*\n|$|(?:\n[ \t]*(?:nice to have|preferred|responsibilities|about|description)[ \t]*:))`,
)

// ExtractRequiredBlock returns the "must-have" span of a job
// description, if one is found.
func ExtractRequiredBlock(text string) (string, bool) {
	m := requiredBlockPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	block := strings.TrimSpace(m[1])
	if block == "" {
		return "", false
	}
	return block, true
}

// BlendSemantic combines a semantic similarity signal (sem in [0,1]) and
// a directional skill coverage signal (cov in [0,1]) into a match score
// and a calibrated success rate, both in [0,100] and rounded to one
// decimal.
func BlendSemantic(sem, cov float64) (matchScore, successRate float64) {
	sem = clamp(sem, 0.0, 1.0)
	cov = clamp(cov, 0.0, 1.0)

	matchScore = 100.0 * (semanticMatchWeight*sem + coverageMatchWeight*cov)

	z := semanticSuccessWeight*sem + coverageSuccessWeight*cov
	successRate = 100.0 / (1.0 + math.Exp(-logisticSteepness*(z-logisticMidpoint)))

	if cov == 0.0 && successRate > zeroCoverageCap {
		successRate = zeroCoverageCap
	}

	return round1(clamp(matchScore, 0.0, 100.0)), round1(clamp(successRate, 0.0, 100.0))
}

// BlendCoverage is the legacy success-rate formula: when a required
// block was found and produced skills, blend the symmetric jaccard
// score with the required-skill coverage; otherwise success degrades to
// the jaccard score itself. Rounded to one decimal.
func BlendCoverage(jaccardScore, requiredCoverage float64, hasRequired bool) float64 {
	if hasRequired {
		success := 0.60*jaccardScore + 40.0*requiredCoverage
		return round1(clamp(success, 0.0, 100.0))
	}
	return round1(clamp(jaccardScore, 0.0, 100.0))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10.0) / 10.0
}
