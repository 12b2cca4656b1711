package pipeline

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// scheduleThreshold is how far in the future a send time has to be before the
// case study is treated as scheduled rather than sent right away.
const scheduleThreshold = time.Minute

var (
	ErrJobNotFound       = errors.New("job posting not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrVotesPending      = errors.New("all assessors must vote before a final decision")
	ErrInvalidStatus     = errors.New("invalid candidate status")
	ErrInvalidVote       = errors.New("invalid vote")
)

// Store holds job postings and candidates in memory. Every mutation goes through
// its methods; readers get copies.
type Store struct {
	mu         sync.RWMutex
	jobs       []JobPosting
	candidates []Candidate

	now    func() time.Time
	rnd    *rand.Rand
	newID  func(prefix string) string
	logger *zap.Logger
}

type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRand overrides the random source used for assessor assignment.
func WithRand(rnd *rand.Rand) Option {
	return func(s *Store) { s.rnd = rnd }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID:  func(prefix string) string { return fmt.Sprintf("%s-%s", prefix, uuid.NewString()) },
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) AddJobPosting(fields JobFields) JobPosting {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := JobPosting{
		ID:        s.newID("job"),
		Title:     fields.Title,
		Division:  fields.Division,
		Process:   fields.Process,
		Status:    JobOpen,
		CreatedAt: s.now(),
	}

	s.jobs = append([]JobPosting{job}, s.jobs...)
	s.logger.Debug("job posting added", zap.String("job_id", job.ID), zap.String("title", job.Title))

	return job
}

func (s *Store) AddCandidate(fields CandidateFields) Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := Candidate{
		ID:          s.newID("cand"),
		JobID:       fields.JobID,
		Name:        fields.Name,
		Email:       fields.Email,
		Status:      StatusApplied,
		AppliedAt:   s.now(),
		Assessors:   []Assessor{},
		Assessments: []Assessment{},
	}

	s.candidates = append(s.candidates, candidate)
	s.logger.Debug("candidate added",
		zap.String("candidate_id", candidate.ID),
		zap.String("job_id", candidate.JobID),
	)

	return candidate.clone()
}

// UpdateCandidateStatus writes the status. Entering In Assessment for the first
// time assigns the assessment panel. A final decision is refused while any vote
// is pending. Other transitions are not checked.
func (s *Store) UpdateCandidateStatus(id string, status CandidateStatus) (Candidate, error) {
	if !status.Valid() {
		return Candidate{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return s.mutate(id, func(c *Candidate) error {
		if status.IsDecision() && !c.AllVotesIn() {
			return ErrVotesPending
		}

		c.Status = status

		if status == StatusInAssessment && len(c.Assessors) == 0 {
			c.Assessors, c.Assessments = assignAssessors(s.rnd)

			lead := c.Lead()
			s.logger.Info("assessors assigned",
				zap.String("candidate_id", c.ID),
				zap.String("lead", lead.Name),
				zap.Int("count", len(c.Assessors)),
			)
		}

		return nil
	})
}

// AddGithubLink records the submission and moves the candidate to Case Study Submitted.
func (s *Store) AddGithubLink(id, link string) (Candidate, error) {
	return s.mutate(id, func(c *Candidate) error {
		c.GithubLink = &link
		c.Status = StatusCaseStudySubmitted
		return nil
	})
}

func (s *Store) UpdateAutomatedEvaluation(id, evaluation string) (Candidate, error) {
	return s.mutate(id, func(c *Candidate) error {
		c.AutomatedEvaluation = &evaluation
		return nil
	})
}

// UpdateAssessment replaces the assessment with the same assessor id. Nothing
// changes when the candidate has no such assessor. The assessor name is always
// taken from the assigned panel.
func (s *Store) UpdateAssessment(id string, assessment Assessment) (Candidate, error) {
	if !assessment.Vote.Valid() {
		return Candidate{}, fmt.Errorf("%w: %q", ErrInvalidVote, assessment.Vote)
	}

	return s.mutate(id, func(c *Candidate) error {
		for i := range c.Assessments {
			if c.Assessments[i].AssessorID != assessment.AssessorID {
				continue
			}
			assessment.AssessorName = c.Assessments[i].AssessorName
			if assessor := c.AssessorByID(assessment.AssessorID); assessor != nil {
				assessment.AssessorName = assessor.Name
			}
			c.Assessments[i] = assessment
			return nil
		}
		s.logger.Debug("assessment ignored, assessor not assigned",
			zap.String("candidate_id", c.ID),
			zap.String("assessor_id", assessment.AssessorID),
		)
		return nil
	})
}

// ScheduleOrSendCaseStudy stores the deadline and either marks the case study as
// sent or records the future send time. Nothing fires at the scheduled time.
func (s *Store) ScheduleOrSendCaseStudy(id string, deadline, sendAt time.Time) (Candidate, error) {
	now := s.now()
	scheduled := sendAt.After(now.Add(scheduleThreshold))

	return s.mutate(id, func(c *Candidate) error {
		c.CaseStudyDeadline = &deadline
		if scheduled {
			c.CaseStudyEmailScheduledAt = &sendAt
			c.Status = StatusApplied
			return nil
		}

		c.CaseStudyEmailScheduledAt = nil
		c.Status = StatusCaseStudySent
		return nil
	})
}

func (s *Store) mutate(id string, fn func(*Candidate) error) (Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.candidates {
		if s.candidates[i].ID != id {
			continue
		}

		updated := s.candidates[i].clone()
		if err := fn(&updated); err != nil {
			return s.candidates[i].clone(), err
		}
		s.candidates[i] = updated

		return updated.clone(), nil
	}

	return Candidate{}, fmt.Errorf("%w: %s", ErrCandidateNotFound, id)
}

func (s *Store) Jobs() []JobPosting {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]JobPosting{}, s.jobs...)
}

func (s *Store) OpenJobs() []JobPosting {
	s.mu.RLock()
	defer s.mu.RUnlock()

	open := make([]JobPosting, 0, len(s.jobs))
	for _, job := range s.jobs {
		if job.Status == JobOpen {
			open = append(open, job)
		}
	}
	return open
}

func (s *Store) Job(id string) (JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return JobPosting{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
}

func (s *Store) Candidates() []Candidate {
	return s.filter(func(Candidate) bool { return true })
}

func (s *Store) Candidate(id string) (Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.candidates {
		if c.ID == id {
			return c.clone(), nil
		}
	}
	return Candidate{}, fmt.Errorf("%w: %s", ErrCandidateNotFound, id)
}

func (s *Store) CandidatesForJob(jobID string) []Candidate {
	return s.filter(func(c Candidate) bool { return c.JobID == jobID })
}

func (s *Store) CandidatesByStatus(status CandidateStatus) []Candidate {
	return s.filter(func(c Candidate) bool { return c.Status == status })
}

func (s *Store) filter(keep func(Candidate) bool) []Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		if keep(c) {
			out = append(out, c.clone())
		}
	}
	return out
}
