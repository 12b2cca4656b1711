package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/spigell/skillscribe/internal/pipeline"
)

// ReportKind selects between the internal and the candidate facing report.
type ReportKind string

const (
	ReportPreliminary ReportKind = "preliminary"
	ReportFinal       ReportKind = "final"
)

// Title returns the capitalised kind as used in report headings.
func (k ReportKind) Title() string {
	if k == ReportFinal {
		return "Final"
	}
	return "Preliminary"
}

// Fallback texts returned when a generation fails.
const (
	EvaluationFailed = "Error generating AI evaluation. Please try again later."
	QuestionsFailed  = "Error generating questions. Please try again."
	ReviewFailed     = "Error generating AI review. Please try again later."
	ReportFailed     = "Error generating feedback report. Please try again later."
)

var (
	ErrCVIncomplete = errors.New("could not extract name or email")
	ErrCVRequest    = errors.New("request failed")
)

// CVParseError is returned by ParseCV. It wraps ErrCVIncomplete or ErrCVRequest.
type CVParseError struct {
	Document string
	Err      error
}

func (e *CVParseError) Error() string {
	if e.Document == "" {
		return fmt.Sprintf("parse cv: %v", e.Err)
	}
	return fmt.Sprintf("parse cv %q: %v", e.Document, e.Err)
}

func (e *CVParseError) Unwrap() error { return e.Err }

// Document is a CV file read fully into memory.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Base64 returns the standard base64 encoding of the document content.
func (d Document) Base64() string {
	return base64.StdEncoding.EncodeToString(d.Data)
}

type CVDetails struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

// CVParser extracts contact details from a CV document.
type CVParser interface {
	ParseCV(ctx context.Context, doc Document) (*CVDetails, error)
}

// Gateway is the set of AI assisted steps of the pipeline. Only ParseCV
// reports failures; the other calls degrade to a fixed text.
type Gateway interface {
	CVParser
	GenerateAutomatedEvaluation(ctx context.Context, githubLink string) string
	GenerateInterviewQuestions(ctx context.Context, job pipeline.JobPosting) []string
	GenerateAssessorReview(ctx context.Context, evaluation *string, vote pipeline.Vote, jobTitle string) string
	GenerateFeedbackReport(ctx context.Context, candidate pipeline.Candidate, job pipeline.JobPosting, kind ReportKind) string
}
