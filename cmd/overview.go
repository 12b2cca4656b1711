package cmd

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/guide"
	"github.com/spigell/skillscribe/internal/pipeline"
	"github.com/spigell/skillscribe/internal/view"
)

const otherOption = "Other..."

func (c *console) overview() (view.View, error) {
	overview := c.app.store.Overview()
	funnel := c.app.store.Funnel()

	fmt.Fprintf(c.out, "Open Positions: %d   Total Candidates: %d   In Assessment: %d   Ready for Interview: %d\n",
		overview.OpenPositions, overview.TotalCandidates, overview.InAssessment, overview.ReadyForInterview)

	fmt.Fprintln(c.out, "\nPipeline")
	for _, line := range funnelBars(funnel, funnelWidth) {
		fmt.Fprintln(c.out, line)
	}

	fmt.Fprintln(c.out, "\nActive Job Postings")
	if len(overview.Jobs) == 0 {
		fmt.Fprintln(c.out, "  none")
	}

	items := make([]menuItem, 0, len(overview.Jobs)+6)
	for _, summary := range overview.Jobs {
		job := summary.Job
		fmt.Fprintf(c.out, "  %-28s %-32s %d candidate(s)\n", job.Title, job.Division, summary.Candidates)
		items = append(items, menuItem{
			label:  fmt.Sprintf("View pipeline: %s (%s)", job.Title, job.Division),
			action: goTo(view.Candidates{JobID: job.ID}),
		})
	}

	items = append(items,
		menuItem{
			label:  fmt.Sprintf("In Assessment (%d)", overview.InAssessment),
			action: goTo(view.FilteredCandidates{Status: pipeline.StatusInAssessment}),
		},
		menuItem{
			label:  fmt.Sprintf("Ready for Interview (%d)", overview.ReadyForInterview),
			action: goTo(view.FilteredCandidates{Status: pipeline.StatusAccepted}),
		},
		menuItem{label: "All Job Postings", action: goTo(view.JobPostings{})},
		menuItem{label: "New Job Posting", action: c.newJob},
		menuItem{label: "Workflow Guide", action: func() (view.View, error) {
			return nil, c.show("Workflow Guide", guide.Workflows())
		}},
		menuItem{label: PromptExit, action: exit},
	)

	return c.choose("Choose an action", items)
}

// funnelBars renders the pipeline stages as horizontal bars scaled to width.
func funnelBars(stages []pipeline.FunnelStage, width int) []string {
	maxCount := pipeline.MaxStageCount(stages)

	lines := make([]string, 0, len(stages))
	for _, stage := range stages {
		bar := strings.Repeat("#", stage.Count*width/maxCount)
		lines = append(lines, fmt.Sprintf("  %-20s %-*s %d", stage.Name, width, bar, stage.Count))
	}
	return lines
}

func (c *console) jobPostings(screen view.Screen) (view.View, error) {
	jobs := c.app.store.Jobs()
	items := make([]menuItem, 0, len(jobs)+2)

	for _, job := range jobs {
		fmt.Fprintf(c.out, "  %-28s %-32s %-6s created %s\n", job.Title, job.Division, job.Status, job.CreatedAt.Format(dateLayout))
		items = append(items, menuItem{
			label:  fmt.Sprintf("%s (%s)", job.Title, job.Division),
			action: goTo(view.Candidates{JobID: job.ID}),
		})
	}

	items = append(items,
		menuItem{label: "New Job Posting", action: c.newJob},
		backItem(screen.View),
	)
	return c.choose("Choose a job posting", items)
}

func (c *console) newJob() (view.View, error) {
	title, err := c.pickOrType("Job Title", pipeline.JobTitleOptions)
	if err != nil {
		return nil, err
	}
	division, err := c.pickOrType("Division", pipeline.DivisionOptions)
	if err != nil {
		return nil, err
	}
	process, err := c.pickOrType("Interview Process", pipeline.InterviewProcessOptions)
	if err != nil {
		return nil, err
	}

	job := c.app.store.AddJobPosting(pipeline.JobFields{Title: title, Division: division, Process: process})
	c.app.logger.Info("job posting created", zap.String("job_id", job.ID), zap.String("title", job.Title))
	c.app.save()

	fmt.Fprintf(c.out, "Created %s (%s).\n", job.Title, job.ID)
	return nil, nil
}

// pickOrType offers the known options and a free text entry.
func (c *console) pickOrType(label string, options []string) (string, error) {
	choice, err := c.pick(label, append(append([]string{}, options...), otherOption))
	if err != nil {
		return "", err
	}
	if choice != otherOption {
		return choice, nil
	}

	value, err := c.ask(label, "", required(label))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (c *console) filtered(screen view.Screen, v view.FilteredCandidates) (view.View, error) {
	titles := jobTitles(c.app.store.Jobs())

	items := make([]menuItem, 0, len(screen.Candidates)+1)
	if len(screen.Candidates) == 0 {
		fmt.Fprintf(c.out, "No candidates with status %q.\n", v.Status)
	}

	for _, cand := range screen.Candidates {
		items = append(items, menuItem{
			label:  fmt.Sprintf("%s <%s> for %s", cand.Name, cand.Email, titles[cand.JobID]),
			action: goTo(view.Assessment{JobID: cand.JobID, CandidateID: cand.ID}),
		})
	}

	items = append(items, backItem(screen.View))
	return c.choose("Choose a candidate", items)
}

func jobTitles(jobs []pipeline.JobPosting) map[string]string {
	titles := make(map[string]string, len(jobs))
	for _, job := range jobs {
		titles[job.ID] = job.Title
	}
	return titles
}
