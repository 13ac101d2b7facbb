// Package output renders tasks for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/tasktracker/internal/core/styles"
	"github.com/colonyops/tasktracker/internal/core/task"
)

// EmptyMessage is printed when a listing has no tasks.
const EmptyMessage = "No tasks found."

const dividerWidth = 20

// Options controls task rendering.
type Options struct {
	// Glyphs enables the status glyph line.
	Glyphs bool
}

// WriteTasks renders tasks as multi-line records separated by blank lines.
func WriteTasks(w io.Writer, tasks []task.Task, opts Options) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	for i, t := range tasks {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, FormatTask(t, opts)); err != nil {
			return err
		}
	}

	return nil
}

// FormatTask renders a single task:
//
//	🔹 Task #1 ━━━━━━━━━━━━━━━━━━━━
//	  └─ 📝
//	  └─ Buy milk
//	  └─ Status: not_done
//	  └─ Created: 2024-05-01 09:30:00
//	  └─ Updated: 2024-05-01 09:30:00
func FormatTask(t task.Task, opts Options) string {
	var b strings.Builder

	header := styles.HeaderStyle.Render(fmt.Sprintf("Task #%d", t.ID))
	divider := styles.DividerStyle.Render(strings.Repeat(styles.IconDivider, dividerWidth))
	fmt.Fprintf(&b, "%s %s %s", styles.IconTask, header, divider)

	if opts.Glyphs {
		line(&b, StatusGlyph(t.Status))
	}
	line(&b, styles.TextStyle.Render(t.Description))
	line(&b, "Status: "+statusStyle(t.Status).Render(StatusText(t.Status)))
	line(&b, styles.MutedStyle.Render("Created: "+t.CreatedAt.String()))
	line(&b, styles.MutedStyle.Render("Updated: "+t.UpdatedAt.String()))

	return b.String()
}

// StatusGlyph returns the glyph for s, falling back to the unknown glyph.
func StatusGlyph(s task.Status) string {
	switch s {
	case task.StatusNotDone:
		return styles.IconNotDone
	case task.StatusInProgress:
		return styles.IconInProgress
	case task.StatusDone:
		return styles.IconDone
	default:
		return styles.IconUnknown
	}
}

// StatusText returns the display text for s. Unknown values render as-is,
// empty ones as "unknown".
func StatusText(s task.Status) string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}

func statusStyle(s task.Status) lipgloss.Style {
	switch s {
	case task.StatusNotDone:
		return styles.StatusNotDoneStyle
	case task.StatusInProgress:
		return styles.StatusInProgressStyle
	case task.StatusDone:
		return styles.StatusDoneStyle
	default:
		return styles.StatusUnknownStyle
	}
}

func line(b *strings.Builder, s string) {
	b.WriteString("\n  ")
	b.WriteString(styles.IconBranch)
	b.WriteString(" ")
	b.WriteString(s)
}
