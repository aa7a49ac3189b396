package handlers

import (
	"fmt"
	"strings"

	"github.com/redaksi/redaksibot/internal/config"
	"github.com/redaksi/redaksibot/internal/sheets"
)

// filterPending returns the pending tasks in store order.
func filterPending(tasks []sheets.Task) []sheets.Task {
	var pending []sheets.Task
	for _, t := range tasks {
		if t.IsPending() {
			pending = append(pending, t)
		}
	}
	return pending
}

// countByStatus returns the number of pending and done tasks. Rows with any
// other status value count toward neither.
func countByStatus(tasks []sheets.Task) (pending, done int) {
	for _, t := range tasks {
		switch {
		case t.IsPending():
			pending++
		case t.IsDone():
			done++
		}
	}
	return pending, done
}

// renderPending renders the pending-only view, or the all-clear message when
// nothing is pending.
func renderPending(msgs config.MessagesConfig, tasks []sheets.Task) string {
	pending := filterPending(tasks)
	if len(pending) == 0 {
		return msgs.AllClear
	}

	lines := make([]string, 0, len(pending))
	for _, t := range pending {
		lines = append(lines, fmt.Sprintf("• %s (%s)", t.Title, t.Author))
	}
	return msgs.PendingHeader + strings.Join(lines, "\n")
}

// renderList renders every row, unfiltered.
func renderList(msgs config.MessagesConfig, tasks []sheets.Task) string {
	var sb strings.Builder
	sb.WriteString(msgs.ListHeader)
	for _, t := range tasks {
		fmt.Fprintf(&sb, "• %s | %s | %s\n", t.Title, t.Author, t.Status)
	}
	return sb.String()
}

// renderRecap renders the pending/done aggregate counts.
func renderRecap(msgs config.MessagesConfig, tasks []sheets.Task) string {
	pending, done := countByStatus(tasks)
	return fmt.Sprintf(msgs.Recap, pending, done)
}
