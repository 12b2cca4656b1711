package pipeline

// Overview is the headline numbers of the hiring dashboard.
type Overview struct {
	OpenPositions     int
	TotalCandidates   int
	InAssessment      int
	ReadyForInterview int
	Jobs              []JobSummary
}

// JobSummary is an open job with the number of candidates in its pipeline.
type JobSummary struct {
	Job        JobPosting
	Candidates int
}

type FunnelStage struct {
	Name  string
	Count int
}

const (
	StageApplied           = "Applied"
	StageScreening         = "Screening"
	StageInAssessment      = "In Assessment"
	StageReadyForInterview = "Ready for Interview"
)

func (s *Store) Overview() Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perJob := make(map[string]int, len(s.jobs))
	overview := Overview{TotalCandidates: len(s.candidates)}

	for _, c := range s.candidates {
		perJob[c.JobID]++
		switch c.Status {
		case StatusInAssessment:
			overview.InAssessment++
		case StatusAccepted:
			overview.ReadyForInterview++
		}
	}

	for _, job := range s.jobs {
		if job.Status != JobOpen {
			continue
		}
		overview.OpenPositions++
		overview.Jobs = append(overview.Jobs, JobSummary{Job: job, Candidates: perJob[job.ID]})
	}

	return overview
}

// Funnel folds candidate statuses into four stages. Rejected candidates are
// left out of the funnel.
func (s *Store) Funnel() []FunnelStage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return funnel(s.candidates)
}

func funnel(candidates []Candidate) []FunnelStage {
	stages := []FunnelStage{
		{Name: StageApplied},
		{Name: StageScreening},
		{Name: StageInAssessment},
		{Name: StageReadyForInterview},
	}

	for _, c := range candidates {
		if idx := stageIndex(c.Status); idx >= 0 {
			stages[idx].Count++
		}
	}

	return stages
}

func stageIndex(status CandidateStatus) int {
	switch status {
	case StatusApplied:
		return 0
	case StatusCaseStudySent, StatusCaseStudySubmitted:
		return 1
	case StatusInAssessment, StatusFinalReview:
		return 2
	case StatusAccepted:
		return 3
	case StatusRejected:
		return -1
	default:
		return -1
	}
}

// MaxStageCount returns the largest stage count, at least 1 so it can scale bars.
func MaxStageCount(stages []FunnelStage) int {
	maxCount := 1
	for _, st := range stages {
		if st.Count > maxCount {
			maxCount = st.Count
		}
	}
	return maxCount
}
