package responder

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// skip notice for runs with no reportable activity
const skipNotice = "Couldn't find any GitHub activity for the given timeframe, skipping.\nYou may want to send a cancel?"

// log-mode answers are indented under their question; multi-line answers
// keep the indent on every line
const logIndent = "  "

// PrintAnswers is the non-interactive mode: no connection is opened, the
// four answers are computed once in standup order and written to w
func PrintAnswers(ctx context.Context, w io.Writer, engine Engine) error {
	has, err := engine.HasActivities(ctx)
	if err != nil {
		return err
	}
	if !has {
		_, err := fmt.Fprintln(w, skipNotice)
		return err
	}

	mood := engine.Mood()
	yesterday, err := engine.Yesterday(ctx, "\n"+logIndent)
	if err != nil {
		return err
	}
	today, err := engine.Today(ctx)
	if err != nil {
		return err
	}
	blockers := engine.Blockers()

	var b strings.Builder
	writeQA(&b, MoodPrompt, mood)
	writeQA(&b, YesterdayPrompt, yesterday)
	writeQA(&b, TodayPrompt, today)
	writeQA(&b, BlockingPrompt, blockers)

	_, err = io.WriteString(w, b.String())
	return err
}

func writeQA(b *strings.Builder, question, answer string) {
	b.WriteString(question)
	b.WriteString("\n")
	b.WriteString(logIndent)
	b.WriteString(answer)
	b.WriteString("\n")
}
