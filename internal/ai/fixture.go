package ai

import (
	"context"
	"fmt"

	"github.com/spigell/skillscribe/internal/pipeline"
)

const (
	FixtureCandidateName  = "Mock Candidate"
	FixtureCandidateEmail = "mock.cv.candidate@example.com"
)

const fixtureEvaluation = `**Overall Assessment:**
The candidate shows a foundational understanding of web development principles. The project is functional but lacks some of the polish and robustness expected for a senior role.

**Strengths:**
- **Component Structure:** The code is well-organized into reusable components.
- **API Integration:** Successfully fetches and displays data from an external API.
- **Basic State Management:** Utilizes React hooks effectively for managing local component state.

**Areas for Improvement:**
- **Code Quality:** Some parts of the code could be refactored for better readability and performance. There's a lack of comments and documentation.
- **Error Handling:** Missing comprehensive error handling for API calls and user inputs.
- **Testing:** No unit or integration tests were provided.
- **Styling:** The UI is basic and could be improved with more attention to responsive design and modern CSS practices.

**Recommendation:**
Potential for a mid-level role, but would require mentorship to reach senior-level expectations. Further discussion on architectural choices is recommended.`

// Fixture answers every call with fixed placeholder content. It is used when
// no model credential is configured.
type Fixture struct{}

func NewFixture() *Fixture {
	return &Fixture{}
}

func (f *Fixture) ParseCV(_ context.Context, doc Document) (*CVDetails, error) {
	if len(doc.Data) == 0 {
		return nil, &CVParseError{Document: doc.Name, Err: ErrCVIncomplete}
	}
	return &CVDetails{Name: FixtureCandidateName, Email: FixtureCandidateEmail}, nil
}

func (f *Fixture) GenerateAutomatedEvaluation(_ context.Context, githubLink string) string {
	return fmt.Sprintf("**Mock Evaluation for %s:**\n\n%s", githubLink, fixtureEvaluation)
}

func (f *Fixture) GenerateInterviewQuestions(_ context.Context, job pipeline.JobPosting) []string {
	return []string{
		fmt.Sprintf("Mock question: What is your experience with React for the %s role?", job.Title),
		"Mock question: Describe a challenging project you worked on in the cloud space.",
		"Mock question: How do you approach designing scalable systems?",
		"Mock question: Explain the importance of CI/CD in modern software development.",
		"Mock question: How would you troubleshoot a performance issue in a web application?",
	}
}

func (f *Fixture) GenerateAssessorReview(_ context.Context, _ *string, vote pipeline.Vote, jobTitle string) string {
	return fmt.Sprintf("This is a mock review based on the vote '%s'. The candidate's AI evaluation was considered. "+
		"They seem like a promising candidate for the %s position, though there are some areas for improvement as noted.", vote, jobTitle)
}

func (f *Fixture) GenerateFeedbackReport(_ context.Context, candidate pipeline.Candidate, job pipeline.JobPosting, kind ReportKind) string {
	decision := "Rejected"
	if candidate.Status == pipeline.StatusAccepted {
		decision = "Accepted for Interview"
	}

	next := "The assessment is still in progress. Further review is required."
	if kind == ReportFinal {
		next = "While we are not moving forward at this time, we encourage you to apply for future roles."
		if candidate.Status == pipeline.StatusAccepted {
			next = "We will be in touch shortly to schedule the next round of interviews."
		}
	}

	return fmt.Sprintf(`# %s Feedback Report for %s

**Role:** %s

---

### Summary
This is a mock-generated report. The candidate has shown strong potential. The final decision was **%s**.

### Strengths
- Good understanding of core concepts.
- Clean and well-structured code submission.

### Areas for Improvement
- More comprehensive testing could be beneficial.
- Lacks documentation in some areas.

### Next Steps
%s`, kind.Title(), candidate.Name, job.Title, decision, next)
}
