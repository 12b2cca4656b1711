package ai

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/logger"
	"github.com/spigell/skillscribe/internal/pipeline"
	"github.com/spigell/skillscribe/internal/utils"
)

//go:embed prompts/*.md
var prompts embed.FS

const defaultMaxLogLength = 200

// Live runs every gateway call against a language model.
type Live struct {
	generator Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewLive(generator Generator, log *zap.Logger, maxLogLength int) *Live {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Live{
		generator: generator,
		logger:    logger.WithProvider(log, generator.Provider(), generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (l *Live) ParseCV(ctx context.Context, doc Document) (*CVDetails, error) {
	raw, err := l.generateJSON(ctx, "parse cv", JSONRequest{
		Prompt:   renderPrompt("cv.md", nil),
		Schema:   cvSchema,
		Document: &doc,
	})
	if err != nil {
		l.logger.Error("cv parsing request failed", zap.String("document", doc.Name), zap.Error(err))
		return nil, &CVParseError{Document: doc.Name, Err: fmt.Errorf("%w: %w", ErrCVRequest, err)}
	}

	details, err := parseCVDetails(raw)
	if err != nil {
		l.logger.Warn("cv parsing returned no usable details", zap.String("document", doc.Name), zap.Error(err))
		return nil, &CVParseError{Document: doc.Name, Err: err}
	}

	return details, nil
}

func (l *Live) GenerateAutomatedEvaluation(ctx context.Context, githubLink string) string {
	prompt := renderPrompt("evaluation.md", map[string]string{
		"GITHUB_LINK": githubLink,
	})

	text, err := l.generateText(ctx, "automated evaluation", prompt)
	if err != nil {
		l.logger.Error("automated evaluation failed", zap.String("github_link", githubLink), zap.Error(err))
		return EvaluationFailed
	}
	return text
}

func (l *Live) GenerateInterviewQuestions(ctx context.Context, job pipeline.JobPosting) []string {
	prompt := renderPrompt("questions.md", map[string]string{
		"JOB_TITLE": job.Title,
		"DIVISION":  job.Division,
		"PROCESS":   job.Process,
	})

	raw, err := l.generateJSON(ctx, "interview questions", JSONRequest{Prompt: prompt, Schema: questionsSchema})
	if err == nil {
		var questions []string
		questions, err = parseQuestions(raw)
		if err == nil {
			return questions
		}
	}

	l.logger.Error("interview questions failed", zap.String("job_id", job.ID), zap.Error(err))
	return []string{QuestionsFailed}
}

func (l *Live) GenerateAssessorReview(ctx context.Context, evaluation *string, vote pipeline.Vote, jobTitle string) string {
	evalText := "No automated evaluation was provided."
	if evaluation != nil && strings.TrimSpace(*evaluation) != "" {
		evalText = *evaluation
	}

	prompt := renderPrompt("review.md", map[string]string{
		"JOB_TITLE":  jobTitle,
		"VOTE":       string(vote),
		"EVALUATION": evalText,
	})

	text, err := l.generateText(ctx, "assessor review", prompt)
	if err != nil {
		l.logger.Error("assessor review failed", zap.String("vote", string(vote)), zap.Error(err))
		return ReviewFailed
	}
	return text
}

func (l *Live) GenerateFeedbackReport(ctx context.Context, candidate pipeline.Candidate, job pipeline.JobPosting, kind ReportKind) string {
	text, err := l.generateText(ctx, "feedback report", buildReportPrompt(candidate, job, kind))
	if err != nil {
		l.logger.Error("feedback report failed",
			zap.String("candidate_id", candidate.ID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return ReportFailed
	}
	return text
}

func buildReportPrompt(candidate pipeline.Candidate, job pipeline.JobPosting, kind ReportKind) string {
	reviews := make([]string, 0, len(candidate.Assessments))
	for _, a := range candidate.Assessments {
		if strings.TrimSpace(a.Review) == "" {
			continue
		}
		reviews = append(reviews, fmt.Sprintf("- Assessor (%s): %q", a.Vote, a.Review))
	}

	reviewsText := strings.Join(reviews, "\n")
	if reviewsText == "" {
		reviewsText = "No manual reviews submitted yet."
	}

	evaluation := candidate.Evaluation()
	if evaluation == "" {
		evaluation = "Not available."
	}

	decision := ""
	if kind == ReportFinal {
		decision = fmt.Sprintf("**Final Decision:**\nThe final decision for this candidate is: **%s**.\n---", candidate.Status)
	}

	return renderPrompt("report.md", map[string]string{
		"CANDIDATE_NAME": candidate.Name,
		"JOB_TITLE":      job.Title,
		"REPORT_KIND":    string(kind),
		"REPORT_TITLE":   kind.Title(),
		"EVALUATION":     evaluation,
		"REVIEWS":        reviewsText,
		"FINAL_DECISION": decision,
	})
}

func (l *Live) generateText(ctx context.Context, step, prompt string) (string, error) {
	l.logRequest(step, prompt)

	raw, err := l.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}

	l.logResponse(step, raw)
	return raw, nil
}

func (l *Live) generateJSON(ctx context.Context, step string, req JSONRequest) (string, error) {
	l.logRequest(step, req.Prompt)

	raw, err := l.generator.GenerateJSON(ctx, req)
	if err != nil {
		return "", err
	}

	l.logResponse(step, raw)
	return raw, nil
}

func (l *Live) logRequest(step, prompt string) {
	l.logger.Debug("ai generate content request",
		logger.Step(step),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, l.maxLogLen)),
	)
}

func (l *Live) logResponse(step, raw string) {
	l.logger.Debug("ai generate content response",
		logger.Step(step),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, l.maxLogLen)),
	)
}

func renderPrompt(name string, values map[string]string) string {
	data, err := prompts.ReadFile("prompts/" + name)
	if err != nil {
		// embedded at build time, so only a typo in name gets here
		panic(fmt.Sprintf("prompt template %s: %v", name, err))
	}

	prompt := string(data)
	for key, value := range values {
		prompt = strings.ReplaceAll(prompt, "{{"+key+"}}", value)
	}
	return strings.TrimSpace(prompt)
}

func parseCVDetails(raw string) (*CVDetails, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCVIncomplete, err)
	}

	var details CVDetails
	if err := weakDecode(data, &details); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCVIncomplete, err)
	}

	details.Name = strings.TrimSpace(details.Name)
	details.Email = strings.TrimSpace(details.Email)

	if missing(details.Name) || missing(details.Email) {
		return nil, ErrCVIncomplete
	}

	return &details, nil
}

func missing(v string) bool {
	return v == "" || strings.EqualFold(v, "N/A")
}

func parseQuestions(raw string) ([]string, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	var out struct {
		Questions []string `mapstructure:"questions"`
	}
	if err := weakDecode(data, &out); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	questions := make([]string, 0, len(out.Questions))
	for _, q := range out.Questions {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

func decodeObject(raw string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	return data, nil
}

func weakDecode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// extractJSON strips markdown code fences some models wrap JSON answers in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
