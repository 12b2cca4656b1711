package view

import (
	"fmt"

	"github.com/spigell/skillscribe/internal/ai"
	"github.com/spigell/skillscribe/internal/pipeline"
)

type Action string

const (
	ActionSendCaseStudy   Action = "Send Case Study"
	ActionAddGithubLink   Action = "Add GitHub Link"
	ActionStartEvaluation Action = "Start AI Evaluation"
	ActionOpenAssessment  Action = "Open Assessment"
	ActionViewResult      Action = "View Result"
)

// CandidateActions lists what the candidate card offers for a status.
func CandidateActions(status pipeline.CandidateStatus) []Action {
	switch status {
	case pipeline.StatusApplied:
		return []Action{ActionSendCaseStudy}
	case pipeline.StatusCaseStudySent:
		return []Action{ActionAddGithubLink}
	case pipeline.StatusCaseStudySubmitted:
		return []Action{ActionStartEvaluation}
	case pipeline.StatusInAssessment, pipeline.StatusFinalReview:
		return []Action{ActionOpenAssessment}
	case pipeline.StatusAccepted, pipeline.StatusRejected:
		return []Action{ActionViewResult}
	default:
		panic(fmt.Sprintf("unknown candidate status %q", status))
	}
}

type DecisionState int

const (
	DecisionPending DecisionState = iota
	DecisionActionable
	DecisionDecided
)

// DecisionPanel describes the final decision block of the assessment screen.
type DecisionPanel struct {
	State   DecisionState
	Outcome pipeline.CandidateStatus
	Waiting int
}

func (p DecisionPanel) Message() string {
	switch p.State {
	case DecisionDecided:
		return fmt.Sprintf("Decision made: %s", p.Outcome)
	case DecisionActionable:
		return "All votes are in. Ready for a final decision."
	default:
		return fmt.Sprintf("Waiting for %d assessor vote(s) before a final decision.", p.Waiting)
	}
}

func FinalDecision(c pipeline.Candidate) DecisionPanel {
	if c.HasDecision() {
		return DecisionPanel{State: DecisionDecided, Outcome: c.Status}
	}

	waiting := 0
	for _, a := range c.Assessments {
		if a.Vote == pipeline.VotePending {
			waiting++
		}
	}
	if waiting > 0 {
		return DecisionPanel{State: DecisionPending, Waiting: waiting}
	}
	return DecisionPanel{State: DecisionActionable}
}

// ReportKinds lists the feedback reports that can be generated for a candidate.
func ReportKinds(c pipeline.Candidate) []ai.ReportKind {
	switch {
	case c.HasDecision():
		return []ai.ReportKind{ai.ReportFinal}
	case c.Status == pipeline.StatusInAssessment || c.Status == pipeline.StatusFinalReview:
		return []ai.ReportKind{ai.ReportPreliminary}
	default:
		return nil
	}
}
