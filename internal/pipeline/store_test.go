package pipeline

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

var testNow = time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	seq := 0
	return NewStore(
		WithClock(func() time.Time { return testNow }),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithIDGenerator(func(prefix string) string {
			seq++
			return prefix + "-" + string(rune('a'+seq-1))
		}),
	)
}

func addApplied(t *testing.T, s *Store) (JobPosting, Candidate) {
	t.Helper()

	job := s.AddJobPosting(JobFields{Title: "Lead Backend Engineer", Division: "FDT", Process: InterviewProcessOptions[0]})
	cand := s.AddCandidate(CandidateFields{Name: "Ada", Email: "ada@example.com", JobID: job.ID})
	return job, cand
}

func TestAddJobPostingPrepends(t *testing.T) {
	s := newTestStore(t)

	first := s.AddJobPosting(JobFields{Title: "first"})
	second := s.AddJobPosting(JobFields{Title: "second"})

	jobs := s.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].ID != second.ID || jobs[1].ID != first.ID {
		t.Fatalf("expected newest job first, got %q then %q", jobs[0].ID, jobs[1].ID)
	}
	if first.Status != JobOpen {
		t.Fatalf("expected new job to be open, got %q", first.Status)
	}
	if !first.CreatedAt.Equal(testNow) {
		t.Fatalf("unexpected created at: %v", first.CreatedAt)
	}
	if first.ID == second.ID {
		t.Fatalf("expected unique ids")
	}
}

func TestAddCandidateDefaults(t *testing.T) {
	s := newTestStore(t)
	job, cand := addApplied(t, s)
	other := s.AddCandidate(CandidateFields{Name: "Bob", Email: "bob@example.com", JobID: job.ID})

	if cand.Status != StatusApplied {
		t.Fatalf("expected Applied, got %q", cand.Status)
	}
	if cand.GithubLink != nil || cand.AutomatedEvaluation != nil || cand.CaseStudyDeadline != nil || cand.CaseStudyEmailScheduledAt != nil {
		t.Fatalf("expected nullable fields to be empty: %+v", cand)
	}
	if len(cand.Assessors) != 0 || len(cand.Assessments) != 0 {
		t.Fatalf("expected no assessors before assessment")
	}

	all := s.Candidates()
	if len(all) != 2 || all[0].ID != cand.ID || all[1].ID != other.ID {
		t.Fatalf("expected candidates appended in order, got %+v", all)
	}
}

func TestEnteringAssessmentAssignsThreeAssessors(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)

	updated, err := s.UpdateCandidateStatus(cand.ID, StatusInAssessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.Assessors) != AssessorsPerCandidate {
		t.Fatalf("expected %d assessors, got %d", AssessorsPerCandidate, len(updated.Assessors))
	}
	if len(updated.Assessments) != AssessorsPerCandidate {
		t.Fatalf("expected %d assessments, got %d", AssessorsPerCandidate, len(updated.Assessments))
	}

	pool := map[string]string{}
	for _, a := range AssessorPool() {
		pool[a.ID] = a.Name
	}

	seen := map[string]bool{}
	for i, assessor := range updated.Assessors {
		if assessor.IsLead != (i == 0) {
			t.Fatalf("expected only the first assessor to lead, got %+v", updated.Assessors)
		}
		if pool[assessor.ID] != assessor.Name {
			t.Fatalf("assessor %+v is not from the pool", assessor)
		}
		if seen[assessor.ID] {
			t.Fatalf("assessor %s drawn twice", assessor.ID)
		}
		seen[assessor.ID] = true

		assessment := updated.Assessments[i]
		if assessment.AssessorID != assessor.ID || assessment.AssessorName != assessor.Name {
			t.Fatalf("assessment %d does not match assessor: %+v", i, assessment)
		}
		if assessment.Vote != VotePending || assessment.Review != "" {
			t.Fatalf("expected pending empty assessment, got %+v", assessment)
		}
	}

	if lead := updated.Lead(); lead == nil || lead.ID != updated.Assessors[0].ID {
		t.Fatalf("expected first assessor to be lead, got %+v", lead)
	}
}

func TestReenteringAssessmentKeepsAssessors(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)

	first, err := s.UpdateCandidateStatus(cand.ID, StatusInAssessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.UpdateCandidateStatus(cand.ID, StatusFinalReview); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := s.UpdateCandidateStatus(cand.ID, StatusInAssessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first.Assessors {
		if first.Assessors[i] != second.Assessors[i] {
			t.Fatalf("assessors changed on re-entry: %+v vs %+v", first.Assessors, second.Assessors)
		}
	}
}

func TestAssessorDrawCoversWholePool(t *testing.T) {
	s := newTestStore(t)
	job := s.AddJobPosting(JobFields{Title: "Data Scientist"})

	counts := map[string]int{}
	for range 200 {
		c := s.AddCandidate(CandidateFields{Name: "n", Email: "e", JobID: job.ID})
		updated, err := s.UpdateCandidateStatus(c.ID, StatusInAssessment)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, a := range updated.Assessors {
			counts[a.ID]++
		}
	}

	for _, a := range AssessorPool() {
		if counts[a.ID] == 0 {
			t.Fatalf("assessor %s never drawn: %+v", a.ID, counts)
		}
	}
}

func TestStatusCountsAreZeroOrThree(t *testing.T) {
	s := newTestStore(t)
	job := s.AddJobPosting(JobFields{Title: "AI/ML Engineer"})

	for _, status := range Statuses() {
		c := s.AddCandidate(CandidateFields{Name: "n", Email: "e", JobID: job.ID})
		if _, err := s.UpdateCandidateStatus(c.ID, status); err != nil && !errors.Is(err, ErrVotesPending) {
			t.Fatalf("unexpected error for %q: %v", status, err)
		}
	}

	for _, c := range s.Candidates() {
		if n := len(c.Assessors); n != 0 && n != AssessorsPerCandidate {
			t.Fatalf("candidate %s has %d assessors", c.ID, n)
		}
	}
}

func TestFinalDecisionRequiresAllVotes(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)

	assessing, err := s.UpdateCandidateStatus(cand.ID, StatusInAssessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, decision := range []CandidateStatus{StatusAccepted, StatusRejected} {
		got, err := s.UpdateCandidateStatus(cand.ID, decision)
		if !errors.Is(err, ErrVotesPending) {
			t.Fatalf("expected ErrVotesPending for %q, got %v", decision, err)
		}
		if got.Status != StatusInAssessment {
			t.Fatalf("status must not change while votes are pending, got %q", got.Status)
		}
	}

	// two of three votes still leave the decision locked
	for _, a := range assessing.Assessments[:2] {
		a.Vote = VoteAccept
		if _, err := s.UpdateAssessment(cand.ID, a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := s.UpdateCandidateStatus(cand.ID, StatusAccepted); !errors.Is(err, ErrVotesPending) {
		t.Fatalf("expected ErrVotesPending with one vote missing, got %v", err)
	}

	stored, _ := s.Candidate(cand.ID)
	if stored.Status != StatusInAssessment {
		t.Fatalf("expected status unchanged, got %q", stored.Status)
	}
}

func TestHiringScenario(t *testing.T) {
	s := newTestStore(t)

	job := s.AddJobPosting(JobFields{Title: "J1", Division: "NDI", Process: InterviewProcessOptions[1]})
	cand := s.AddCandidate(CandidateFields{Name: "C1", Email: "c1@example.com", JobID: job.ID})
	if cand.Status != StatusApplied {
		t.Fatalf("expected Applied, got %q", cand.Status)
	}

	assessing, err := s.UpdateCandidateStatus(cand.ID, StatusInAssessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assessing.Assessors) != 3 {
		t.Fatalf("expected 3 assessors, got %d", len(assessing.Assessors))
	}

	for _, a := range assessing.Assessments {
		if a.Vote != VotePending {
			t.Fatalf("expected pending vote, got %q", a.Vote)
		}
		a.Vote = VoteAccept
		a.Review = "good"
		if _, err := s.UpdateAssessment(cand.ID, a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	voted, _ := s.Candidate(cand.ID)
	if !voted.AllVotesIn() {
		t.Fatalf("expected all votes in: %+v", voted.Assessments)
	}

	decided, err := s.UpdateCandidateStatus(cand.ID, StatusAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decided.Status != StatusAccepted {
		t.Fatalf("expected %q, got %q", StatusAccepted, decided.Status)
	}
}

func TestAddGithubLinkForcesSubmitted(t *testing.T) {
	for _, status := range Statuses() {
		t.Run(string(status), func(t *testing.T) {
			s := newTestStore(t)
			_, cand := addApplied(t, s)

			s.Restore(Snapshot{Jobs: s.Jobs(), Candidates: []Candidate{withStatus(cand, status)}})

			updated, err := s.AddGithubLink(cand.ID, "https://github.com/ada/case")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.Status != StatusCaseStudySubmitted {
				t.Fatalf("expected %q, got %q", StatusCaseStudySubmitted, updated.Status)
			}
			if updated.Link() != "https://github.com/ada/case" {
				t.Fatalf("unexpected link: %q", updated.Link())
			}
		})
	}
}

func withStatus(c Candidate, status CandidateStatus) Candidate {
	c.Status = status
	return c
}

func TestUpdateAutomatedEvaluationKeepsStatus(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)

	if _, err := s.AddGithubLink(cand.ID, "https://github.com/ada/case"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := s.UpdateAutomatedEvaluation(cand.ID, "**Overall Assessment:** fine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Evaluation() != "**Overall Assessment:** fine" {
		t.Fatalf("unexpected evaluation: %q", updated.Evaluation())
	}
	if updated.Status != StatusCaseStudySubmitted {
		t.Fatalf("expected status to stay %q, got %q", StatusCaseStudySubmitted, updated.Status)
	}
}

func TestUpdateAssessmentIgnoresUnknownAssessor(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)

	before, _ := s.UpdateCandidateStatus(cand.ID, StatusInAssessment)

	after, err := s.UpdateAssessment(cand.ID, Assessment{AssessorID: VictorID, AssessorName: VictorName, Vote: VoteReject})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range before.Assessments {
		if before.Assessments[i] != after.Assessments[i] {
			t.Fatalf("assessments changed: %+v vs %+v", before.Assessments, after.Assessments)
		}
	}
}

func TestScheduleOrSendCaseStudy(t *testing.T) {
	deadline := testNow.Add(7 * 24 * time.Hour)

	tests := []struct {
		name          string
		sendAt        time.Time
		wantStatus    CandidateStatus
		wantScheduled bool
	}{
		{name: "send now", sendAt: testNow, wantStatus: StatusCaseStudySent},
		{name: "within a minute counts as now", sendAt: testNow.Add(59 * time.Second), wantStatus: StatusCaseStudySent},
		{name: "in the past", sendAt: testNow.Add(-time.Hour), wantStatus: StatusCaseStudySent},
		{name: "two hours ahead", sendAt: testNow.Add(2 * time.Hour), wantStatus: StatusApplied, wantScheduled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, cand := addApplied(t, s)

			updated, err := s.ScheduleOrSendCaseStudy(cand.ID, deadline, tt.sendAt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if updated.Status != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, updated.Status)
			}
			if updated.CaseStudyDeadline == nil || !updated.CaseStudyDeadline.Equal(deadline) {
				t.Fatalf("expected deadline to be stored, got %v", updated.CaseStudyDeadline)
			}

			if !tt.wantScheduled {
				if updated.CaseStudyEmailScheduledAt != nil {
					t.Fatalf("expected no scheduled time, got %v", updated.CaseStudyEmailScheduledAt)
				}
				return
			}
			if updated.CaseStudyEmailScheduledAt == nil || !updated.CaseStudyEmailScheduledAt.Equal(tt.sendAt) {
				t.Fatalf("expected scheduled time %v, got %v", tt.sendAt, updated.CaseStudyEmailScheduledAt)
			}
		})
	}
}

func TestScheduledThenSentClearsSchedule(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)
	deadline := testNow.Add(7 * 24 * time.Hour)

	if _, err := s.ScheduleOrSendCaseStudy(cand.ID, deadline, testNow.Add(2*time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent, err := s.ScheduleOrSendCaseStudy(cand.ID, deadline, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent.CaseStudyEmailScheduledAt != nil || sent.Status != StatusCaseStudySent {
		t.Fatalf("expected sent case study without schedule, got %+v", sent)
	}
}

func TestUnknownCandidate(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.UpdateCandidateStatus("missing", StatusInAssessment); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
	if _, err := s.AddGithubLink("missing", "x"); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
	if _, err := s.Job("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestInvalidStatusRejected(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)

	if _, err := s.UpdateCandidateStatus(cand.ID, CandidateStatus("Hired")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)

	assessing, _ := s.UpdateCandidateStatus(cand.ID, StatusInAssessment)
	assessing.Assessments[0].Vote = VoteReject

	stored, _ := s.Candidate(cand.ID)
	if stored.Assessments[0].Vote != VotePending {
		t.Fatalf("mutating a returned candidate leaked into the store")
	}
}

func TestQueries(t *testing.T) {
	s := newTestStore(t)
	s.Seed()

	if got := len(s.CandidatesForJob("job-1")); got != 2 {
		t.Fatalf("expected 2 candidates for job-1, got %d", got)
	}
	if got := s.CandidatesByStatus(StatusInAssessment); len(got) != 1 || got[0].ID != "cand-2" {
		t.Fatalf("unexpected in assessment candidates: %+v", got)
	}
	if got := len(s.OpenJobs()); got != 2 {
		t.Fatalf("expected 2 open jobs, got %d", got)
	}
}

func TestUpdateAssessmentRejectsUnknownVotes(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)

	assigned, err := s.UpdateCandidateStatus(cand.ID, StatusInAssessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, vote := range []Vote{"", "Maybe"} {
		for _, a := range assigned.Assessments {
			_, err := s.UpdateAssessment(cand.ID, Assessment{AssessorID: a.AssessorID, Vote: vote})
			if !errors.Is(err, ErrInvalidVote) {
				t.Fatalf("vote %q: expected ErrInvalidVote, got %v", vote, err)
			}
		}
	}

	if _, err := s.UpdateCandidateStatus(cand.ID, StatusAccepted); !errors.Is(err, ErrVotesPending) {
		t.Fatalf("expected decision to stay blocked, got %v", err)
	}

	got, _ := s.Candidate(cand.ID)
	if got.Status != StatusInAssessment {
		t.Fatalf("expected status %q, got %q", StatusInAssessment, got.Status)
	}
	for _, a := range got.Assessments {
		if a.Vote != VotePending {
			t.Fatalf("expected pending votes, got %+v", got.Assessments)
		}
	}
}

func TestUpdateAssessmentKeepsAssessorName(t *testing.T) {
	s := newTestStore(t)
	_, cand := addApplied(t, s)

	assigned, _ := s.UpdateCandidateStatus(cand.ID, StatusInAssessment)
	target := assigned.Assessors[1]

	updated, err := s.UpdateAssessment(cand.ID, Assessment{
		AssessorID:   target.ID,
		AssessorName: "Somebody Else",
		Review:       "Good tests",
		Vote:         VoteAccept,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, ok := updated.Assessment(target.ID)
	if !ok {
		t.Fatalf("assessment for %s missing", target.ID)
	}
	if a.AssessorName != target.Name || a.Review != "Good tests" || a.Vote != VoteAccept {
		t.Fatalf("unexpected assessment: %+v", a)
	}
}

func TestAllVotesInTreatsUnknownVotesAsMissing(t *testing.T) {
	c := Candidate{Assessments: []Assessment{{Vote: VoteAccept}, {Vote: ""}}}
	if c.AllVotesIn() {
		t.Fatal("expected an empty vote to count as missing")
	}
}
