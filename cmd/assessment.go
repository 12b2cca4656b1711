package cmd

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/pipeline"
	"github.com/spigell/skillscribe/internal/view"
)

func (c *console) assessment(screen view.Screen) (view.View, error) {
	job := *screen.Job
	cand := *screen.Candidate

	fmt.Fprintf(c.out, "%s <%s>\n%s\nStatus: %s\n", cand.Name, cand.Email, job.Title, cand.Status)
	if link := cand.Link(); link != "" {
		fmt.Fprintln(c.out, link)
	}

	fmt.Fprintln(c.out, "\nAutomated AI Evaluation")
	if evaluation := cand.Evaluation(); evaluation != "" {
		fmt.Fprintln(c.out, evaluation)
	} else {
		fmt.Fprintln(c.out, "No evaluation available.")
	}

	fmt.Fprintln(c.out, "\nAssessor Reviews")
	if len(cand.Assessments) == 0 {
		fmt.Fprintln(c.out, "  No assessors assigned.")
	}

	items := make([]menuItem, 0, len(cand.Assessments)+5)
	for _, a := range cand.Assessments {
		name := a.AssessorName
		if assessor := cand.AssessorByID(a.AssessorID); assessor != nil && assessor.IsLead {
			name += " (lead)"
		}

		review := a.Review
		if review == "" {
			review = "-"
		}
		fmt.Fprintf(c.out, "  %-28s %-16s %s\n", name, a.Vote, review)

		assessment := a
		items = append(items, menuItem{
			label:  fmt.Sprintf("Assessor card: %s [%s]", name, a.Vote),
			action: func() (view.View, error) { return nil, c.assessorCard(job, cand, assessment) },
		})
	}

	panel := view.FinalDecision(cand)
	fmt.Fprintf(c.out, "\nFinal Decision: %s\n", panel.Message())

	for _, kind := range view.ReportKinds(cand) {
		items = append(items, menuItem{
			label: fmt.Sprintf("Generate %s Report", kind.Title()),
			action: func() (view.View, error) {
				fmt.Fprintln(c.out, "Generating report...")
				report := c.app.gateway.GenerateFeedbackReport(c.ctx, cand, job, kind)
				return nil, c.show(kind.Title()+" Feedback Report", report)
			},
		})
	}

	if panel.State == view.DecisionActionable {
		items = append(items,
			menuItem{label: "Accept for Interview", action: func() (view.View, error) {
				return nil, c.decide(cand, pipeline.StatusAccepted)
			}},
			menuItem{label: "Reject Candidate", action: func() (view.View, error) {
				return nil, c.decide(cand, pipeline.StatusRejected)
			}},
		)
	}

	items = append(items, backItem(screen.View))
	return c.choose("Choose an action", items)
}

func (c *console) assessorCard(job pipeline.JobPosting, cand pipeline.Candidate, a pipeline.Assessment) error {
	_, err := c.choose(fmt.Sprintf("%s [%s]", a.AssessorName, a.Vote), []menuItem{
		{label: "Cast Vote", action: func() (view.View, error) {
			votes := pipeline.CastVotes()
			options := make([]string, 0, len(votes))
			for _, v := range votes {
				options = append(options, string(v))
			}

			choice, err := c.pick("Vote", options)
			if err != nil {
				return nil, err
			}
			a.Vote = pipeline.Vote(choice)
			return nil, c.saveAssessment(cand.ID, a)
		}},
		{label: "Edit Review", action: func() (view.View, error) {
			review, err := c.ask("Review", a.Review, nil)
			if err != nil {
				return nil, err
			}
			a.Review = review
			return nil, c.saveAssessment(cand.ID, a)
		}},
		{label: "Generate Review with AI", action: func() (view.View, error) {
			if a.Vote == pipeline.VotePending {
				fmt.Fprintln(c.out, "Please select a vote before generating a review.")
				return nil, nil
			}

			fmt.Fprintln(c.out, "Generating review...")
			a.Review = c.app.gateway.GenerateAssessorReview(c.ctx, cand.AutomatedEvaluation, a.Vote, job.Title)
			fmt.Fprintf(c.out, "\n%s\n", a.Review)
			return nil, c.saveAssessment(cand.ID, a)
		}},
		{label: PromptBack, action: stay},
	})
	return err
}

func (c *console) saveAssessment(candidateID string, a pipeline.Assessment) error {
	if _, err := c.app.store.UpdateAssessment(candidateID, a); err != nil {
		c.fail("saving the assessment", err)
		return nil
	}
	c.app.save()
	return nil
}

func (c *console) decide(cand pipeline.Candidate, status pipeline.CandidateStatus) error {
	_, err := c.app.store.UpdateCandidateStatus(cand.ID, status)
	if errors.Is(err, pipeline.ErrVotesPending) {
		fmt.Fprintln(c.out, "All assessors must submit their votes before a final decision can be made.")
		return nil
	}
	if err != nil {
		c.fail("recording the decision", err)
		return nil
	}

	c.app.logger.Info("final decision recorded",
		zap.String("candidate_id", cand.ID),
		zap.String("status", string(status)),
	)
	c.app.save()

	fmt.Fprintf(c.out, "Decision: %s. HR will be notified to schedule the next steps or inform the candidate.\n", status)
	return nil
}
