package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrInvalidSnapshot = errors.New("invalid pipeline state")

// Snapshot is the load-all/save-all form of the store.
type Snapshot struct {
	Jobs       []JobPosting `json:"jobs"`
	Candidates []Candidate  `json:"candidates"`
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{Jobs: s.Jobs(), Candidates: s.Candidates()}
}

// Restore replaces both collections with the snapshot contents.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append([]JobPosting{}, snap.Jobs...)
	s.candidates = make([]Candidate, 0, len(snap.Candidates))
	for _, c := range snap.Candidates {
		if c.Assessors == nil {
			c.Assessors = []Assessor{}
		}
		if c.Assessments == nil {
			c.Assessments = []Assessment{}
		}
		s.candidates = append(s.candidates, c.clone())
	}
}

// SaveFile writes the store to path as indented JSON.
func (s *Store) SaveFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Snapshot()); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return nil
}

// LoadFile restores the store from path. It reports false when the file does
// not exist yet; an empty file restores an empty pipeline.
func (s *Store) LoadFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return false, err
	}

	var snap Snapshot
	if stat.Size() > 0 {
		if err := json.NewDecoder(file).Decode(&snap); err != nil {
			return false, fmt.Errorf("decode state file %q: %w", path, err)
		}
	}

	if err := snap.Validate(); err != nil {
		return false, fmt.Errorf("state file %q: %w", path, err)
	}

	s.Restore(snap)
	return true, nil
}

// Validate checks what the store relies on: known statuses and votes, unique
// ids, candidates attached to an existing job, and an assessment panel that is
// either empty or three assessors with one lead and one assessment each.
func (snap Snapshot) Validate() error {
	jobs := make(map[string]bool, len(snap.Jobs))
	for _, job := range snap.Jobs {
		if job.ID == "" || jobs[job.ID] {
			return fmt.Errorf("%w: job id %q is empty or duplicated", ErrInvalidSnapshot, job.ID)
		}
		jobs[job.ID] = true

		if !job.Status.Valid() {
			return fmt.Errorf("%w: job %s: unknown status %q", ErrInvalidSnapshot, job.ID, job.Status)
		}
	}

	seen := make(map[string]bool, len(snap.Candidates))
	for _, c := range snap.Candidates {
		if c.ID == "" || seen[c.ID] {
			return fmt.Errorf("%w: candidate id %q is empty or duplicated", ErrInvalidSnapshot, c.ID)
		}
		seen[c.ID] = true

		if !jobs[c.JobID] {
			return fmt.Errorf("%w: candidate %s: unknown job %q", ErrInvalidSnapshot, c.ID, c.JobID)
		}
		if !c.Status.Valid() {
			return fmt.Errorf("%w: candidate %s: unknown status %q", ErrInvalidSnapshot, c.ID, c.Status)
		}
		if err := validatePanel(c); err != nil {
			return fmt.Errorf("%w: candidate %s: %v", ErrInvalidSnapshot, c.ID, err)
		}
	}

	return nil
}

func validatePanel(c Candidate) error {
	switch len(c.Assessors) {
	case 0:
		if len(c.Assessments) != 0 {
			return fmt.Errorf("%d assessments without assessors", len(c.Assessments))
		}
		return nil
	case AssessorsPerCandidate:
	default:
		return fmt.Errorf("%d assessors, want 0 or %d", len(c.Assessors), AssessorsPerCandidate)
	}

	leads := 0
	assessors := make(map[string]bool, len(c.Assessors))
	for _, a := range c.Assessors {
		if a.ID == "" || assessors[a.ID] {
			return fmt.Errorf("assessor id %q is empty or duplicated", a.ID)
		}
		assessors[a.ID] = true
		if a.IsLead {
			leads++
		}
	}
	if leads != 1 {
		return fmt.Errorf("%d lead assessors, want 1", leads)
	}

	if len(c.Assessments) != len(c.Assessors) {
		return fmt.Errorf("%d assessments for %d assessors", len(c.Assessments), len(c.Assessors))
	}
	for _, a := range c.Assessments {
		if !assessors[a.AssessorID] {
			return fmt.Errorf("assessment for unassigned or repeated assessor %q", a.AssessorID)
		}
		delete(assessors, a.AssessorID)

		if !a.Vote.Valid() {
			return fmt.Errorf("assessor %s: unknown vote %q", a.AssessorID, a.Vote)
		}
	}

	return nil
}
