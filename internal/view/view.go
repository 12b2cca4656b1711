package view

import (
	"fmt"

	"github.com/spigell/skillscribe/internal/pipeline"
)

const (
	JobNotFound       = "Job not found"
	CandidateNotFound = "Candidate not found"
)

// View identifies a screen of the console. The set of implementations is closed.
type View interface {
	isView()
}

type HiringOverview struct{}

type JobPostings struct{}

type Candidates struct {
	JobID string
}

type Assessment struct {
	JobID       string
	CandidateID string
}

type FilteredCandidates struct {
	Status pipeline.CandidateStatus
}

func (HiringOverview) isView()     {}
func (JobPostings) isView()        {}
func (Candidates) isView()         {}
func (Assessment) isView()         {}
func (FilteredCandidates) isView() {}

// Screen is a View resolved against the current data.
type Screen struct {
	View       View
	Title      string
	Job        *pipeline.JobPosting
	Candidate  *pipeline.Candidate
	Candidates []pipeline.Candidate
	NotFound   string
}

func (s Screen) Found() bool {
	return s.NotFound == ""
}

// Resolve looks up the entities a view refers to.
func Resolve(v View, jobs []pipeline.JobPosting, candidates []pipeline.Candidate) Screen {
	screen := Screen{View: v}

	switch v := v.(type) {
	case HiringOverview:
		screen.Title = "Hiring Overview"
		screen.Candidates = candidates
	case JobPostings:
		screen.Title = "Job Postings"
	case Candidates:
		job := findJob(jobs, v.JobID)
		if job == nil {
			screen.NotFound = JobNotFound
			return screen
		}
		screen.Job = job
		screen.Title = "Candidates for " + job.Title
		screen.Candidates = forJob(candidates, job.ID)
	case Assessment:
		job := findJob(jobs, v.JobID)
		if job == nil {
			screen.NotFound = JobNotFound
			return screen
		}
		screen.Job = job
		candidate := findCandidate(candidates, v.CandidateID)
		if candidate == nil || candidate.JobID != job.ID {
			screen.NotFound = CandidateNotFound
			return screen
		}
		screen.Candidate = candidate
		screen.Title = fmt.Sprintf("Assessment: %s", candidate.Name)
	case FilteredCandidates:
		screen.Title = fmt.Sprintf("Candidates: %s", v.Status)
		for _, c := range candidates {
			if c.Status == v.Status {
				screen.Candidates = append(screen.Candidates, c)
			}
		}
	default:
		panic(fmt.Sprintf("unknown view %T", v))
	}

	return screen
}

// Parent returns the screen the back action leads to.
func Parent(v View) View {
	switch v := v.(type) {
	case Assessment:
		return Candidates{JobID: v.JobID}
	case Candidates, FilteredCandidates, JobPostings, HiringOverview:
		return HiringOverview{}
	default:
		panic(fmt.Sprintf("unknown view %T", v))
	}
}

func findJob(jobs []pipeline.JobPosting, id string) *pipeline.JobPosting {
	for i := range jobs {
		if jobs[i].ID == id {
			job := jobs[i]
			return &job
		}
	}
	return nil
}

func findCandidate(candidates []pipeline.Candidate, id string) *pipeline.Candidate {
	for i := range candidates {
		if candidates[i].ID == id {
			c := candidates[i]
			return &c
		}
	}
	return nil
}

func forJob(candidates []pipeline.Candidate, jobID string) []pipeline.Candidate {
	out := []pipeline.Candidate{}
	for _, c := range candidates {
		if c.JobID == jobID {
			out = append(out, c)
		}
	}
	return out
}
