package cmd

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/ai"
	"github.com/spigell/skillscribe/internal/ingestion"
	"github.com/spigell/skillscribe/internal/pipeline"
	"github.com/spigell/skillscribe/internal/view"
)

const caseStudyDays = 7

func (c *console) candidates(screen view.Screen) (view.View, error) {
	job := *screen.Job

	fmt.Fprintf(c.out, "%s\nProcess: %s\n\n", job.Division, job.Process)
	if len(screen.Candidates) == 0 {
		fmt.Fprintln(c.out, "No candidates yet.")
	}

	items := make([]menuItem, 0, len(screen.Candidates)+4)
	for _, cand := range screen.Candidates {
		fmt.Fprintf(c.out, "  %-24s %-32s %-22s applied %s\n", cand.Name, cand.Email, cand.Status, cand.AppliedAt.Format(dateLayout))

		id := cand.ID
		items = append(items, menuItem{
			label:  fmt.Sprintf("%s <%s> [%s]", cand.Name, cand.Email, cand.Status),
			action: func() (view.View, error) { return c.candidateCard(job, id) },
		})
	}

	items = append(items,
		menuItem{label: "New Candidate", action: func() (view.View, error) { return c.newCandidate(job) }},
		menuItem{label: "Upload CVs", action: func() (view.View, error) { return c.uploadCVs(job) }},
		menuItem{label: "Generate Interview Questions", action: func() (view.View, error) { return nil, c.interviewQuestions(job) }},
		backItem(screen.View),
	)

	return c.choose("Choose a candidate or an action", items)
}

func (c *console) newCandidate(job pipeline.JobPosting) (view.View, error) {
	name, err := c.ask("Full Name", "", required("Full Name"))
	if err != nil {
		return nil, err
	}
	email, err := c.ask("Email Address", "", validEmail)
	if err != nil {
		return nil, err
	}

	cand := c.app.store.AddCandidate(pipeline.CandidateFields{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		JobID: job.ID,
	})
	c.app.logger.Info("candidate added", zap.String("candidate_id", cand.ID), zap.String("job_id", job.ID))
	c.app.save()

	return nil, nil
}

func (c *console) uploadCVs(job pipeline.JobPosting) (view.View, error) {
	raw, err := c.ask("CV files (PDF, DOC, DOCX, TXT), comma separated", "", required("CV files"))
	if err != nil {
		return nil, err
	}

	paths := splitPaths(raw)
	fmt.Fprintf(c.out, "Parsing %d file(s)...\n", len(paths))

	results, err := ingestion.NewImporter(c.app.gateway, c.app.store, c.app.logger).Import(c.ctx, job.ID, paths)
	if err != nil {
		c.fail("uploading cvs", err)
		return nil, nil
	}

	printImportResults(c.out, results)
	imported, failed := ingestion.Summary(results)
	fmt.Fprintf(c.out, "%d candidate(s) added, %d file(s) failed.\n", imported, failed)

	if imported > 0 {
		c.app.save()
	}
	return nil, nil
}

func splitPaths(raw string) []string {
	parts := strings.Split(raw, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (c *console) interviewQuestions(job pipeline.JobPosting) error {
	questions, ok := c.questions[job.ID]
	if !ok {
		fmt.Fprintln(c.out, "Generating questions...")
		questions = c.app.gateway.GenerateInterviewQuestions(c.ctx, job)
		if len(questions) > 0 && questions[0] != ai.QuestionsFailed {
			c.questions[job.ID] = questions
		}
	}

	lines := make([]string, 0, len(questions))
	for i, q := range questions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, q))
	}
	return c.show("Interview Questions for "+job.Title, strings.Join(lines, "\n"))
}

func (c *console) candidateCard(job pipeline.JobPosting, id string) (view.View, error) {
	cand, err := c.app.store.Candidate(id)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(c.out, "\n%s <%s>\nStatus: %s\nApplied: %s\n", cand.Name, cand.Email, cand.Status, cand.AppliedAt.Format(dateLayout))
	if cand.CaseStudyDeadline != nil {
		fmt.Fprintf(c.out, "Case study deadline: %s\n", cand.CaseStudyDeadline.Format(dateLayout))
	}
	if cand.CaseStudyEmailScheduledAt != nil {
		fmt.Fprintf(c.out, "Case study email scheduled for: %s\n", cand.CaseStudyEmailScheduledAt.Format(momentLayout))
	}
	if link := cand.Link(); link != "" {
		fmt.Fprintf(c.out, "GitHub: %s\n", link)
	}

	actions := view.CandidateActions(cand.Status)
	items := make([]menuItem, 0, len(actions)+1)
	for _, action := range actions {
		items = append(items, menuItem{
			label:  string(action),
			action: c.cardAction(action, job, cand),
		})
	}
	items = append(items, menuItem{label: PromptBack, action: stay})

	return c.choose("Choose an action", items)
}

func (c *console) cardAction(action view.Action, job pipeline.JobPosting, cand pipeline.Candidate) func() (view.View, error) {
	switch action {
	case view.ActionSendCaseStudy:
		return func() (view.View, error) { return nil, c.sendCaseStudy(cand) }
	case view.ActionAddGithubLink:
		return func() (view.View, error) { return nil, c.addGithubLink(cand) }
	case view.ActionStartEvaluation:
		return func() (view.View, error) { return c.startEvaluation(job, cand) }
	case view.ActionOpenAssessment, view.ActionViewResult:
		return goTo(view.Assessment{JobID: job.ID, CandidateID: cand.ID})
	default:
		return func() (view.View, error) { return nil, fmt.Errorf("unknown action %q", action) }
	}
}

func (c *console) sendCaseStudy(cand pipeline.Candidate) error {
	now := time.Now()

	rawDeadline, err := c.ask("Deadline (YYYY-MM-DD)", now.AddDate(0, 0, caseStudyDays).Format(dateLayout), validDate)
	if err != nil {
		return err
	}
	rawSendAt, err := c.ask("Send at (YYYY-MM-DD HH:MM, empty for now)", "", validMoment)
	if err != nil {
		return err
	}

	deadline, _ := parseDeadline(rawDeadline)
	sendAt := now
	if strings.TrimSpace(rawSendAt) != "" {
		sendAt, _ = time.ParseInLocation(momentLayout, strings.TrimSpace(rawSendAt), time.Local)
	}

	updated, err := c.app.store.ScheduleOrSendCaseStudy(cand.ID, deadline, sendAt)
	if err != nil {
		c.fail("sending the case study", err)
		return nil
	}
	c.app.save()

	if updated.CaseStudyEmailScheduledAt != nil {
		fmt.Fprintf(c.out, "Case study email scheduled for %s.\n", updated.CaseStudyEmailScheduledAt.Format(momentLayout))
	} else {
		fmt.Fprintln(c.out, "Case study sent.")
	}
	return nil
}

// parseDeadline reads a date and moves it to the end of that day.
func parseDeadline(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(23*time.Hour + 59*time.Minute), nil
}

func (c *console) addGithubLink(cand pipeline.Candidate) error {
	link, err := c.ask("GitHub repository URL", "", validGithubLink)
	if err != nil {
		return err
	}

	if _, err := c.app.store.AddGithubLink(cand.ID, strings.TrimSpace(link)); err != nil {
		c.fail("adding the github link", err)
		return nil
	}
	c.app.save()
	return nil
}

func (c *console) startEvaluation(job pipeline.JobPosting, cand pipeline.Candidate) (view.View, error) {
	link := cand.Link()
	if link == "" {
		fmt.Fprintln(c.out, "The candidate has no GitHub link yet.")
		return nil, nil
	}

	fmt.Fprintln(c.out, "Evaluating...")
	evaluation := c.app.gateway.GenerateAutomatedEvaluation(c.ctx, link)

	if _, err := c.app.store.UpdateAutomatedEvaluation(cand.ID, evaluation); err != nil {
		c.fail("saving the evaluation", err)
		return nil, nil
	}
	if _, err := c.app.store.UpdateCandidateStatus(cand.ID, pipeline.StatusInAssessment); err != nil {
		c.fail("starting the assessment", err)
		return nil, nil
	}
	c.app.save()

	return view.Assessment{JobID: job.ID, CandidateID: cand.ID}, nil
}
