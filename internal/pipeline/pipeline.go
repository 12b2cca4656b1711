package pipeline

import (
	"time"
)

type JobStatus string

const (
	JobOpen   JobStatus = "Open"
	JobClosed JobStatus = "Closed"
)

func (s JobStatus) Valid() bool {
	return s == JobOpen || s == JobClosed
}

type CandidateStatus string

const (
	StatusApplied            CandidateStatus = "Applied"
	StatusCaseStudySent      CandidateStatus = "Case Study Sent"
	StatusCaseStudySubmitted CandidateStatus = "Case Study Submitted"
	StatusInAssessment       CandidateStatus = "In Assessment"
	StatusFinalReview        CandidateStatus = "Final Review"
	StatusAccepted           CandidateStatus = "Accepted for Interview"
	StatusRejected           CandidateStatus = "Rejected"
)

// Statuses lists every candidate status in pipeline order.
func Statuses() []CandidateStatus {
	return []CandidateStatus{
		StatusApplied,
		StatusCaseStudySent,
		StatusCaseStudySubmitted,
		StatusInAssessment,
		StatusFinalReview,
		StatusAccepted,
		StatusRejected,
	}
}

func (s CandidateStatus) Valid() bool {
	for _, status := range Statuses() {
		if s == status {
			return true
		}
	}
	return false
}

// IsDecision reports whether the status is a final hiring decision.
func (s CandidateStatus) IsDecision() bool {
	return s == StatusAccepted || s == StatusRejected
}

type Vote string

const (
	VoteAccept  Vote = "Accept"
	VoteReject  Vote = "Reject"
	VoteDefer   Vote = "Defer to Victor"
	VotePending Vote = "Pending"
)

// CastVotes lists the votes an assessor can cast. Pending is the initial state only.
func CastVotes() []Vote {
	return []Vote{VoteAccept, VoteReject, VoteDefer}
}

func (v Vote) Valid() bool {
	switch v {
	case VoteAccept, VoteReject, VoteDefer, VotePending:
		return true
	default:
		return false
	}
}

type JobPosting struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Division  string    `json:"division"`
	Process   string    `json:"process"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// JobFields carries the user supplied part of a job posting.
type JobFields struct {
	Title    string
	Division string
	Process  string
}

type Assessor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsLead bool   `json:"isLead"`
}

type Assessment struct {
	AssessorID   string `json:"assessorId"`
	AssessorName string `json:"assessorName"`
	Review       string `json:"review"`
	Vote         Vote   `json:"vote"`
}

type Candidate struct {
	ID                        string          `json:"id"`
	JobID                     string          `json:"jobId"`
	Name                      string          `json:"name"`
	Email                     string          `json:"email"`
	GithubLink                *string         `json:"githubLink"`
	Status                    CandidateStatus `json:"status"`
	AppliedAt                 time.Time       `json:"appliedAt"`
	Assessors                 []Assessor      `json:"assessors"`
	Assessments               []Assessment    `json:"assessments"`
	AutomatedEvaluation       *string         `json:"automatedEvaluation"`
	CaseStudyDeadline         *time.Time      `json:"caseStudyDeadline"`
	CaseStudyEmailScheduledAt *time.Time      `json:"caseStudyEmailScheduledAt"`
}

// CandidateFields carries the user supplied part of a candidate.
type CandidateFields struct {
	Name  string
	Email string
	JobID string
}

// AllVotesIn reports whether every assessor has cast a vote. A candidate
// without assessments has no outstanding votes.
func (c *Candidate) AllVotesIn() bool {
	for _, a := range c.Assessments {
		if a.Vote == VotePending || !a.Vote.Valid() {
			return false
		}
	}
	return true
}

func (c *Candidate) HasDecision() bool {
	return c.Status.IsDecision()
}

// Lead returns the lead assessor or nil before assignment.
func (c *Candidate) Lead() *Assessor {
	for i := range c.Assessors {
		if c.Assessors[i].IsLead {
			return &c.Assessors[i]
		}
	}
	return nil
}

func (c *Candidate) AssessorByID(id string) *Assessor {
	for i := range c.Assessors {
		if c.Assessors[i].ID == id {
			return &c.Assessors[i]
		}
	}
	return nil
}

// Assessment returns a copy of the assessment of the given assessor.
func (c *Candidate) Assessment(assessorID string) (Assessment, bool) {
	for _, a := range c.Assessments {
		if a.AssessorID == assessorID {
			return a, true
		}
	}
	return Assessment{}, false
}

func (c *Candidate) Evaluation() string {
	if c.AutomatedEvaluation == nil {
		return ""
	}
	return *c.AutomatedEvaluation
}

func (c *Candidate) Link() string {
	if c.GithubLink == nil {
		return ""
	}
	return *c.GithubLink
}

func (c Candidate) clone() Candidate {
	out := c
	out.GithubLink = cloneString(c.GithubLink)
	out.AutomatedEvaluation = cloneString(c.AutomatedEvaluation)
	out.CaseStudyDeadline = cloneTime(c.CaseStudyDeadline)
	out.CaseStudyEmailScheduledAt = cloneTime(c.CaseStudyEmailScheduledAt)
	out.Assessors = append([]Assessor{}, c.Assessors...)
	out.Assessments = append([]Assessment{}, c.Assessments...)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
