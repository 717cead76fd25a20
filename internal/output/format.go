// Package output formats tasks for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/metalagman/tasker/internal/task"
)

// EmptyList is printed when there are no tasks.
const EmptyList = "No tasks."

// Line formats a task as "<id>. [✔] <description>".
func Line(t task.Task) string {
	mark := " "
	if t.Completed {
		mark = "✔"
	}
	return fmt.Sprintf("%d. [%s] %s", t.ID, mark, t.Description)
}

// WriteList writes one line per task, or EmptyList.
func WriteList(w io.Writer, tasks []task.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, EmptyList)
		return err
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintln(w, Line(t)); err != nil {
			return err
		}
	}
	return nil
}

// Markdown returns the tasks as a markdown table.
func Markdown(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "_" + EmptyList + "_\n"
	}
	var b strings.Builder
	b.WriteString("| ID | Done | Description |\n")
	b.WriteString("|---:|:----:|-------------|\n")
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = "✔"
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", t.ID, done, escapeCell(t.Description))
	}
	return b.String()
}

// RenderMarkdown renders the markdown table with glamour. An empty style
// picks one from the terminal background.
func RenderMarkdown(tasks []task.Task, style string) (string, error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(Markdown(tasks))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
