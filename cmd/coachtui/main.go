// Command coachtui is a terminal demo that walks the practice curriculum
// and renders a generated exercise for the selected stage, so the core
// packages can be exercised without a browser client.
package main

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trumpetcoach/backend/internal/curriculum"
	"trumpetcoach/backend/internal/exercise"
	"trumpetcoach/backend/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	currentStageStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#00FF00"))

	exerciseNameStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFF00"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type model struct {
	stages     models.Curriculum
	stageIdx   int
	exerciseIdx int
	score      models.Score
	scoreErr   error
	quitting   bool
}

func newModel() model {
	m := model{stages: curriculum.Load()}
	m.regenerate()
	return m
}

func (m *model) regenerate() {
	if len(m.stages) == 0 {
		return
	}
	stage := m.stages[m.stageIdx]
	if len(stage.Exercises) == 0 {
		return
	}
	ex := stage.Exercises[m.exerciseIdx%len(stage.Exercises)]
	key := ex.Keys[0]
	score, err := exercise.Generate(ex.ExerciseType, key, float64(ex.TempoRange.Min), ex.Difficulty, ex.MidiRange.Low, ex.MidiRange.High)
	m.score = score
	m.scoreErr = err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "down", "j":
			if m.stageIdx < len(m.stages)-1 {
				m.stageIdx++
				m.exerciseIdx = 0
				m.regenerate()
			}
		case "up", "k":
			if m.stageIdx > 0 {
				m.stageIdx--
				m.exerciseIdx = 0
				m.regenerate()
			}
		case "right", "l":
			m.exerciseIdx++
			m.regenerate()
		case "left", "h":
			if m.exerciseIdx > 0 {
				m.exerciseIdx--
				m.regenerate()
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.stages) == 0 {
		return errorStyle.Render("curriculum is empty") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Trumpet Coach") + "\n\n")

	for i, s := range m.stages {
		line := fmt.Sprintf("Stage %d: %s", s.StageNumber, s.Name)
		if i == m.stageIdx {
			b.WriteString(currentStageStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(stageStyle.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n")

	stage := m.stages[m.stageIdx]
	if len(stage.Exercises) > 0 {
		ex := stage.Exercises[m.exerciseIdx%len(stage.Exercises)]
		b.WriteString(exerciseNameStyle.Render(ex.Name) + "\n")
		b.WriteString(noteStyle.Render(ex.Description) + "\n\n")

		if m.scoreErr != nil {
			b.WriteString(errorStyle.Render("could not generate exercise: "+m.scoreErr.Error()) + "\n")
		} else {
			b.WriteString(fmt.Sprintf("tempo %.0f bpm, %d notes, %.1f beats total\n",
				m.score.Tempo, len(m.score.Notes), m.score.TotalBeats))
			b.WriteString(renderPitches(m.score) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("[up/down] stage  [left/right] exercise  [q] quit"))
	return b.String()
}

func renderPitches(score models.Score) string {
	var parts []string
	for _, n := range score.Notes {
		if n.IsRest {
			parts = append(parts, "-")
			continue
		}
		parts = append(parts, fmt.Sprintf("%d", n.Midi))
	}
	return strings.Join(parts, " ")
}

func main() {
	p := tea.NewProgram(newModel())
	if _, err := p.Run(); err != nil {
		log.Fatalf("coachtui: %v", err)
	}
}
