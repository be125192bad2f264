// Package console runs an assessment session over plain line-oriented
// input and output, for terminals where the full-screen UI is not wanted.
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/flow"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

// ErrNoQuestions is returned when no question set could be obtained.
var ErrNoQuestions = errors.New(flow.NoQuestionsError)

// ErrAborted is returned when input ends before the session completes.
var ErrAborted = errors.New("assessment aborted")

// Session wires a machine to a reader and writer.
type Session struct {
	Backend flow.Backend
	Events  store.EventRepo
	In      io.Reader
	Out     io.Writer
}

// backCommand returns to the previous question. The colon keeps it apart
// from free-text answers such as "b" or "back".
const backCommand = ":b"

// Run drives one assessment to completion and returns its outcome. The
// outcome is recorded in Events when that is set; a recording failure is
// reported on Out and does not fail the session.
func (s *Session) Run(ctx context.Context) (*flow.Outcome, error) {
	m := flow.New(s.Backend)
	in := bufio.NewScanner(s.In)

	eff, err := m.Start()
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(s.Out, "Loading questions...")
	if err := m.Run(ctx, eff); err != nil {
		return nil, err
	}
	if m.State() == flow.StateUnavailable {
		return nil, ErrNoQuestions
	}
	s.notice(m)

	for m.State() == flow.StateAnswering {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.prompt(m)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return nil, fmt.Errorf("read answer: %w", err)
			}
			return nil, ErrAborted
		}
		line := strings.TrimSpace(in.Text())

		switch strings.ToLower(line) {
		case backCommand, ":back":
			if !m.CanPrev() {
				fmt.Fprintln(s.Out, "Already at the first question.")
				continue
			}
			if err := m.Prev(); err != nil {
				return nil, err
			}
			continue
		case "":
			if v, ok := m.CurrentAnswer(); ok && !v.Empty() {
				break
			}
			fmt.Fprintln(s.Out, "Please answer this question to continue.")
			continue
		default:
			if err := m.Answer(line); err != nil {
				fmt.Fprintf(s.Out, "  %v\n", err)
				continue
			}
		}

		if !m.OnLast() {
			if err := m.Next(); err != nil {
				return nil, err
			}
			continue
		}

		eff, err := m.Submit()
		if err != nil {
			return nil, err
		}
		if m.State() == flow.StateAnalyzing {
			fmt.Fprintln(s.Out, "\nAnalyzing your answers...")
		} else {
			fmt.Fprintln(s.Out, "\nGenerating your report...")
		}
		if err := m.Run(ctx, eff); err != nil {
			return nil, err
		}
		s.notice(m)
		if m.State() == flow.StateAnswering {
			fmt.Fprintln(s.Out, "\nA few follow-up questions. Type your answer and press Enter.")
		}
	}

	o := m.Outcome()
	if o == nil {
		return nil, fmt.Errorf("session ended in %s without a result", m.State())
	}
	if err := flow.Record(ctx, s.Events, o); err != nil {
		fmt.Fprintf(s.Out, "warning: result not saved: %v\n", err)
	}
	return o, nil
}

func (s *Session) notice(m *flow.Machine) {
	n := m.Notice()
	if n == nil {
		return
	}
	label := "note"
	switch n.Level {
	case flow.NoticeWarning:
		label = "warning"
	case flow.NoticeError:
		label = "error"
	}
	fmt.Fprintf(s.Out, "[%s] %s\n", label, n.Text)
}

func (s *Session) prompt(m *flow.Machine) {
	q, _ := m.Current()
	pos, total := m.Position()
	fmt.Fprintf(s.Out, "\nQuestion %d of %d (%d%%)\n%s\n", pos, total, int(m.Progress()*100+0.5), q.Text)

	switch q.Type {
	case assessment.TypeScale:
		fmt.Fprintln(s.Out, "  0 = Not at all, 1 = Several days, 2 = More than half the days, 3 = Nearly every day")
	case assessment.TypeYesNo:
		fmt.Fprintln(s.Out, "  yes / no")
	}
	if v, ok := m.CurrentAnswer(); ok {
		fmt.Fprintf(s.Out, "  current answer: %s (Enter keeps it)\n", v.String())
	}
	if m.CanPrev() {
		fmt.Fprintf(s.Out, "  %s = back\n", backCommand)
	}
	fmt.Fprint(s.Out, "> ")
}

// WriteOutcome prints the outcome document as indented JSON.
func WriteOutcome(w io.Writer, o *flow.Outcome) error {
	doc, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(doc))
	return err
}
