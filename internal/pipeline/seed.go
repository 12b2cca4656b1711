package pipeline

import "time"

var (
	JobTitleOptions = []string{
		"Senior Frontend Engineer",
		"Cloud Infrastructure Specialist",
		"Lead Backend Engineer",
		"Data Scientist",
		"AI/ML Engineer",
		"Product Manager",
	}

	InterviewProcessOptions = []string{
		"Standard: Screening -> Case Study -> Technical Interviews",
		"Simplified: Screening -> Paired Programming Interview",
		"Comprehensive: Screening -> Case Study -> Panel Interview -> Cultural Fit",
		"Executive: Multiple Rounds -> Final Panel Presentation",
	}

	DivisionOptions = []string{
		"AI Practice",
		"AI Program",
		"FDT",
		"NDI",
	}
)

// Seed fills an empty store with demo postings and candidates.
func (s *Store) Seed() {
	s.Restore(SeedSnapshot())
}

func SeedSnapshot() Snapshot {
	link := "https://github.com/example/project-1"
	evaluation := "The project demonstrates a good understanding of React components and props. " +
		"However, the code lacks proper error handling and could be structured more efficiently. " +
		"The CSS is not responsive, which is a key requirement. Overall, a decent attempt but needs refinement."
	janeDeadline := time.Date(2025, time.July, 1, 23, 59, 0, 0, time.UTC)
	peterDeadline := time.Date(2025, time.June, 28, 23, 59, 0, 0, time.UTC)

	return Snapshot{
		Jobs: []JobPosting{
			{
				ID:        "job-1",
				Title:     JobTitleOptions[0],
				Division:  DivisionOptions[0],
				Process:   InterviewProcessOptions[0],
				Status:    JobOpen,
				CreatedAt: time.Date(2025, time.June, 20, 10, 0, 0, 0, time.UTC),
			},
			{
				ID:        "job-2",
				Title:     JobTitleOptions[1],
				Division:  DivisionOptions[2],
				Process:   InterviewProcessOptions[2],
				Status:    JobOpen,
				CreatedAt: time.Date(2025, time.June, 18, 14, 30, 0, 0, time.UTC),
			},
		},
		Candidates: []Candidate{
			{
				ID:          "cand-1",
				JobID:       "job-1",
				Name:        "John Doe",
				Email:       "john.doe@example.com",
				Status:      StatusApplied,
				AppliedAt:   time.Date(2025, time.June, 21, 9, 0, 0, 0, time.UTC),
				Assessors:   []Assessor{},
				Assessments: []Assessment{},
			},
			{
				ID:         "cand-2",
				JobID:      "job-1",
				Name:       "Jane Smith",
				Email:      "jane.smith@example.com",
				GithubLink: &link,
				Status:     StatusInAssessment,
				AppliedAt:  time.Date(2025, time.June, 22, 11, 0, 0, 0, time.UTC),
				Assessors: []Assessor{
					{ID: "assessor-1", Name: "Alice Johnson", IsLead: true},
					{ID: "assessor-2", Name: "Bob Williams"},
					{ID: "assessor-3", Name: "Charlie Brown"},
				},
				Assessments: []Assessment{
					{AssessorID: "assessor-1", AssessorName: "Alice Johnson", Review: "Solid fundamentals, but could use more work on state management.", Vote: VotePending},
					{AssessorID: "assessor-2", AssessorName: "Bob Williams", Vote: VotePending},
					{AssessorID: "assessor-3", AssessorName: "Charlie Brown", Vote: VotePending},
				},
				AutomatedEvaluation: &evaluation,
				CaseStudyDeadline:   &janeDeadline,
			},
			{
				ID:                "cand-3",
				JobID:             "job-2",
				Name:              "Peter Jones",
				Email:             "peter.jones@example.com",
				Status:            StatusCaseStudySent,
				AppliedAt:         time.Date(2025, time.June, 20, 16, 0, 0, 0, time.UTC),
				Assessors:         []Assessor{},
				Assessments:       []Assessment{},
				CaseStudyDeadline: &peterDeadline,
			},
		},
	}
}
