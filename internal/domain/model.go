package domain

import "time"

// Severity levels for issues found during validation.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Category identifies one of the independent scoring dimensions.
type Category string

const (
	CategorySecurity     Category = "security"
	CategoryTechnical    Category = "technical_quality"
	CategoryOriginality  Category = "originality"
	CategoryCompleteness Category = "completeness"
)

// Categories enumerates all scoring categories in weight order.
var Categories = []Category{
	CategorySecurity,
	CategoryTechnical,
	CategoryOriginality,
	CategoryCompleteness,
}

// Issue represents a single finding produced by an analysis stage.
// Issues are immutable once created.
type Issue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	File     string `json:"file"`
	Line     int    `json:"line,omitempty"`
	Rule     string `json:"rule"`
}

// FileInfo carries a submitted file's content and metadata through the
// analysis pipeline.
type FileInfo struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Content []byte `json:"-"`
}

// FileResult holds the per-file outcome of the analysis stages: one score
// per category plus every issue found. Produced once per file and never
// mutated after creation.
type FileResult struct {
	File   FileInfo         `json:"file"`
	Scores map[Category]int `json:"scores"`
	Issues []Issue          `json:"issues"`
}

// Recommendation is the terminal verdict for a submission.
type Recommendation string

const (
	RecommendApprove     Recommendation = "approve"
	RecommendHumanReview Recommendation = "human_review"
	RecommendReject      Recommendation = "reject"
)

// Confidence thresholds for the recommendation decision.
const (
	approveThreshold = 85
	reviewThreshold  = 70
)

// Report is the terminal artifact of a validation run: averaged category
// scores, the combined issue list in file order, the overall confidence and
// the recommendation.
type Report struct {
	ValidationID   string           `json:"validation_id,omitempty"`
	Confidence     int              `json:"confidence"`
	SecurityPassed bool             `json:"security_passed"`
	Scores         map[Category]int `json:"scores"`
	Issues         []Issue          `json:"issues"`
	Recommendation Recommendation   `json:"recommendation"`
	FilesProcessed int              `json:"files_processed"`
	ProcessingTime time.Duration    `json:"processing_time_ms"`
	CommitHash     string           `json:"commit_hash,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}

// HasErrors reports whether any issue carries error severity.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Recommend decides the terminal verdict from confidence and the combined
// issue list. Error presence is an absolute override: no confidence value
// can approve a submission with an outstanding error-severity issue.
func Recommend(confidence int, issues []Issue) Recommendation {
	switch {
	case HasErrors(issues):
		return RecommendReject
	case confidence >= approveThreshold:
		return RecommendApprove
	case confidence >= reviewThreshold:
		return RecommendHumanReview
	default:
		return RecommendReject
	}
}

// ClampScore bounds a raw score to the valid [0,100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
