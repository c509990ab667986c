package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastDuration is how long a toast stays up unless dismissed.
const toastDuration = 6 * time.Second

// maxVisibleToasts caps how many toasts render at once.
const maxVisibleToasts = 3

type toast struct {
	id          int
	title       string
	description string
	destructive bool
}

// pushToast queues a toast and schedules its expiry.
func (m Model) pushToast(title, description string, destructive bool) (Model, tea.Cmd) {
	m.toastSeq++
	id := m.toastSeq
	toasts := make([]toast, len(m.toasts), len(m.toasts)+1)
	copy(toasts, m.toasts)
	m.toasts = append(toasts, toast{id: id, title: title, description: description, destructive: destructive})
	return m, m.tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// removeToast drops the toast with id, if it is still showing.
func (m Model) removeToast(id int) Model {
	out := m.toasts[:0:0]
	for _, t := range m.toasts {
		if t.id != id {
			out = append(out, t)
		}
	}
	m.toasts = out
	return m
}

// dismissToast drops the most recent toast.
func (m Model) dismissToast() Model {
	if len(m.toasts) == 0 {
		return m
	}
	return m.removeToast(m.toasts[len(m.toasts)-1].id)
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}

	start := 0
	if len(m.toasts) > maxVisibleToasts {
		start = len(m.toasts) - maxVisibleToasts
	}

	var rendered []string
	for _, t := range m.toasts[start:] {
		style := toastStyle
		if t.destructive {
			style = destructiveToastStyle
		}
		rendered = append(rendered, style.Render(boxHeaderStyle.Render(t.title)+"\n"+t.description))
	}
	return strings.Join(rendered, "\n")
}
