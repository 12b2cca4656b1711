package pipeline

import "math/rand/v2"

const (
	// AssessorsPerCandidate is the size of every assessment panel.
	AssessorsPerCandidate = 3

	VictorID   = "victor"
	VictorName = "Victor Sterling"
)

type poolMember struct {
	ID   string
	Name string
}

var assessorPool = []poolMember{
	{ID: "assessor-1", Name: "Alice Johnson"},
	{ID: "assessor-2", Name: "Bob Williams"},
	{ID: "assessor-3", Name: "Charlie Brown"},
	{ID: "assessor-4", Name: "Diana Miller"},
	{ID: "assessor-5", Name: "Ethan Davis"},
	{ID: "assessor-6", Name: "Fiona Garcia"},
}

// AssessorPool returns the fixed pool assessors are drawn from.
func AssessorPool() []Assessor {
	pool := make([]Assessor, 0, len(assessorPool))
	for _, m := range assessorPool {
		pool = append(pool, Assessor{ID: m.ID, Name: m.Name})
	}
	return pool
}

// assignAssessors draws a uniform permutation of the pool and keeps its prefix.
// The first drawn assessor leads. No memory of earlier draws is kept, so the
// workload across assessors is not balanced.
func assignAssessors(rnd *rand.Rand) ([]Assessor, []Assessment) {
	perm := rnd.Perm(len(assessorPool))

	assessors := make([]Assessor, 0, AssessorsPerCandidate)
	assessments := make([]Assessment, 0, AssessorsPerCandidate)
	for i, idx := range perm[:AssessorsPerCandidate] {
		m := assessorPool[idx]
		assessors = append(assessors, Assessor{ID: m.ID, Name: m.Name, IsLead: i == 0})
		assessments = append(assessments, Assessment{
			AssessorID:   m.ID,
			AssessorName: m.Name,
			Vote:         VotePending,
		})
	}

	return assessors, assessments
}
