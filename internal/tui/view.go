package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/clarolist/internal/project"
)

func (m Model) View() string {
	content := m.current().View()
	switch m.screen {
	case screenTasks:
		content = m.tasksHeader() + "\n" + content
	case screenAll:
		content = m.allHeader() + "\n" + content
	}

	if m.input != inputNone {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := inputTitle(m.input)
		if m.statusErr && m.status != "" {
			title += " " + errorStyle.Render(m.status)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	} else if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		content += "\n" + style.Render(m.status)
	}
	return panelStyle.Render(content)
}

func inputTitle(k inputKind) string {
	switch k {
	case inputAddFolder:
		return "New folder"
	case inputRenameFolder:
		return "Rename folder"
	case inputAddTask:
		return "Add task"
	case inputRenameTask:
		return "Rename task"
	}
	return ""
}

func (m Model) tasksHeader() string {
	f, ok := m.folderByID(m.folderID)
	if !ok {
		return ""
	}
	done, pending := 0, 0
	for _, t := range f.Tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return counts(done, pending)
}

func (m Model) allHeader() string {
	done, pending := project.Stats(m.deps.AllTasks.Items())
	if done+pending == 0 {
		return mutedStyle.Render("No tasks found")
	}
	return counts(done, pending)
}

func counts(done, pending int) string {
	return fmt.Sprintf("%s %d  %s %d  %s %d",
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), done+pending)
}
