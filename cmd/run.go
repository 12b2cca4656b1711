package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/utils"
	"github.com/spigell/skillscribe/internal/view"
)

const (
	PromptBack   = "Back"
	PromptExit   = "Exit"
	PromptCopy   = "Copy to Clipboard"
	menuSize     = 12
	funnelWidth  = 30
	dateLayout   = "2006-01-02"
	momentLayout = "2006-01-02 15:04"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive hiring console",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	app := newApplication()
	app.logger.Info("starting skillscribe", zap.String("version", version))
	app.connectAI(ctx)

	c := &console{
		ctx:       ctx,
		app:       app,
		out:       cmd.OutOrStdout(),
		current:   view.HiringOverview{},
		questions: make(map[string][]string),
	}

	if err := c.loop(); err != nil {
		app.logger.Fatal("exiting", zap.Error(err))
	}
	app.logger.Info("exiting", zap.String("reason", "exit requested"))
}

// console drives the screens. One screen is active at a time.
type console struct {
	ctx     context.Context
	app     *application
	out     io.Writer
	current view.View

	// interview questions are generated once per job
	questions map[string][]string
}

type menuItem struct {
	label string
	// action returns the next view, nil to stay on the current one.
	action func() (view.View, error)
}

func (c *console) loop() error {
	for {
		screen := view.Resolve(c.current, c.app.store.Jobs(), c.app.store.Candidates())
		if !screen.Found() {
			fmt.Fprintf(c.out, "\n%s\n", screen.NotFound)
			c.current = view.Parent(c.current)
			continue
		}

		next, err := c.render(screen)
		if err != nil {
			if errors.Is(err, errExit) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		if next != nil {
			c.current = next
		}
	}
}

func (c *console) render(screen view.Screen) (view.View, error) {
	fmt.Fprintf(c.out, "\n=== %s ===\n", screen.Title)

	switch v := screen.View.(type) {
	case view.HiringOverview:
		return c.overview()
	case view.JobPostings:
		return c.jobPostings(screen)
	case view.Candidates:
		return c.candidates(screen)
	case view.Assessment:
		return c.assessment(screen)
	case view.FilteredCandidates:
		return c.filtered(screen, v)
	default:
		return nil, fmt.Errorf("unknown view %T", v)
	}
}

func (c *console) choose(label string, items []menuItem) (view.View, error) {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.label)
	}

	sel := promptui.Select{
		Label: label,
		Items: labels,
		Size:  menuSize,
	}

	idx, _, err := sel.Run()
	if err != nil {
		return nil, err
	}

	return items[idx].action()
}

func (c *console) ask(label, defaultValue string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   defaultValue,
		AllowEdit: defaultValue != "",
		Validate:  validate,
	}
	return p.Run()
}

func (c *console) pick(label string, options []string) (string, error) {
	sel := promptui.Select{Label: label, Items: options, Size: menuSize}
	_, value, err := sel.Run()
	return value, err
}

// show prints generated text and offers to copy it.
func (c *console) show(title, text string) error {
	fmt.Fprintf(c.out, "\n--- %s ---\n%s\n", title, text)

	_, err := c.choose("Next", []menuItem{
		{label: PromptCopy, action: func() (view.View, error) {
			c.copy(text)
			return nil, nil
		}},
		{label: PromptBack, action: stay},
	})
	return err
}

func (c *console) copy(text string) {
	if err := clipboard.WriteAll(utils.PlainText(text)); err != nil {
		c.app.logger.Warn("copying to clipboard", zap.Error(err))
		return
	}
	fmt.Fprintln(c.out, "Copied to clipboard.")
}

// fail reports a failed action on the console and keeps the session going.
func (c *console) fail(step string, err error) {
	c.app.logger.Warn(step, zap.Error(err))
	fmt.Fprintf(c.out, "%s: %v\n", step, err)
}

func stay() (view.View, error) {
	return nil, nil
}

func goTo(v view.View) func() (view.View, error) {
	return func() (view.View, error) { return v, nil }
}

func exit() (view.View, error) {
	return nil, errExit
}

func backItem(v view.View) menuItem {
	return menuItem{label: PromptBack, action: goTo(view.Parent(v))}
}
