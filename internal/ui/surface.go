package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/Swochhanda14/frontbooth/form"
	"github.com/charmbracelet/x/term"
)

// Printer is a form.Surface writing inline messages and submission results to
// a terminal stream.
type Printer struct {
	Out io.Writer
	// Verbose prints every event, not only visible messages and submissions.
	Verbose bool
}

// NewPrinter returns a Printer on out, or on stdout when out is nil.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{Out: out}
}

func (p *Printer) Render(event form.Event, view form.View) {
	switch event.Kind {
	case form.EventSubmit:
		if view.SubmitSuccessful {
			fmt.Fprintln(p.Out, SuccessBadge.Render("SUBMITTED"), MutedStyle.Render(view.Name))
			return
		}
		fmt.Fprintln(p.Out, ErrorBadge.Render("BLOCKED"), MutedStyle.Render(fmt.Sprintf("%d error(s)", len(view.Errors))))
		fmt.Fprintln(p.Out, RenderErrors(view.Errors))

	case form.EventChange, form.EventBlur:
		if field, ok := findField(view, event.Name); ok && field.Visible {
			fmt.Fprintln(p.Out, ErrorStyle.Render("✗ "+field.Name+": "+field.Message))
			return
		}
		if p.Verbose {
			fmt.Fprintln(p.Out, MutedStyle.Render(fmt.Sprintf("%s %s", event.Kind, event.Name)))
		}

	default:
		if p.Verbose {
			fmt.Fprintln(p.Out, MutedStyle.Render(fmt.Sprintf("%s %s %s", event.Kind, event.Name, event.ID)))
		}
	}
}

// findField looks up a FieldView by its current FieldName.
func findField(view form.View, name string) (form.FieldView, bool) {
	for _, field := range view.Fields {
		if field.Name == name {
			return field, true
		}
	}
	for _, group := range view.Groups {
		for _, item := range group.Items {
			for _, field := range item.Fields {
				if field.Name == name {
					return field, true
				}
			}
		}
	}
	return form.FieldView{}, false
}

// IsInteractive reports whether stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}
