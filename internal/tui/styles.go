package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chatwithcat/companion-core/core/dialogue"
)

func inputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(width - 4)
}

func statusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func userStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1).
		MarginLeft(2)
}

func catStyle(mood dialogue.Mood) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(moodColor(mood)).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(moodColor(mood)).
		Padding(0, 1).
		MarginLeft(2)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 2)
}

func selectionStyle(selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 2)
	if selected {
		return style.Foreground(lipgloss.Color("214")).Bold(true)
	}
	return style.Foreground(lipgloss.Color("245"))
}

func moodColor(mood dialogue.Mood) lipgloss.Color {
	switch mood {
	case dialogue.MoodHappy:
		return lipgloss.Color("214")
	case dialogue.MoodConfused:
		return lipgloss.Color("141")
	case dialogue.MoodSad:
		return lipgloss.Color("39")
	case dialogue.MoodAngry:
		return lipgloss.Color("196")
	case dialogue.MoodThinking:
		return lipgloss.Color("245")
	default:
		return lipgloss.Color("252")
	}
}

func moodFace(mood dialogue.Mood) string {
	switch mood {
	case dialogue.MoodHappy:
		return "=^.^="
	case dialogue.MoodConfused:
		return "=o.O="
	case dialogue.MoodSad:
		return "=T.T="
	case dialogue.MoodAngry:
		return "=>.<="
	case dialogue.MoodThinking:
		return "=-.-="
	default:
		return "=^.^="
	}
}
