package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/recall/internal/achievement"
	"github.com/fyrsmithlabs/recall/internal/deck"
	"github.com/fyrsmithlabs/recall/internal/session"
	"github.com/fyrsmithlabs/recall/internal/srs"
)

// Engine is the session surface the review model drives.
type Engine interface {
	SubmitReview(ctx context.Context, cardID string, q srs.Quality) (*deck.Card, error)
	SkipCard(ctx context.Context, cardID string) error
	EndSession(ctx context.Context, quitEarly bool) (*session.Record, []achievement.Achievement, error)
	PreviewCard(ctx context.Context, cardID string) (map[srs.Quality]srs.State, error)
}

// phase is the screen the review model is on.
type phase int

const (
	phaseFront phase = iota
	phaseBack
	phaseSummary
)

// ReviewModel is the BubbleTea model for one study session. The session
// must already be started on the engine; the model ends it.
type ReviewModel struct {
	engine Engine
	cards  []*deck.Card
	index  int
	phase  phase

	preview map[srs.Quality]srs.State
	err     error

	record   *session.Record
	unlocked []achievement.Achievement

	progress progress.Model
	quitting bool
}

// NewReview creates a review model over the session's card set.
func NewReview(engine Engine, cards []*deck.Card) ReviewModel {
	prog := progress.New(
		progress.WithGradient("#00ffff", "#ff00ff"),
		progress.WithWidth(40),
	)
	return ReviewModel{
		engine:   engine,
		cards:    cards,
		progress: prog,
	}
}

// Message types
type reviewedMsg struct{ card *deck.Card }
type skippedMsg struct{}
type previewMsg map[srs.Quality]srs.State
type sessionDoneMsg struct {
	record   *session.Record
	unlocked []achievement.Achievement
}
type errMsg error

// Init starts the session flow; an empty card set ends it immediately.
func (m ReviewModel) Init() tea.Cmd {
	if len(m.cards) == 0 {
		return m.endSession(false)
	}
	return nil
}

func (m ReviewModel) submitReview(cardID string, q srs.Quality) tea.Cmd {
	return func() tea.Msg {
		card, err := m.engine.SubmitReview(context.Background(), cardID, q)
		if err != nil {
			return errMsg(err)
		}
		return reviewedMsg{card: card}
	}
}

func (m ReviewModel) skipCard(cardID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.engine.SkipCard(context.Background(), cardID); err != nil {
			return errMsg(err)
		}
		return skippedMsg{}
	}
}

func (m ReviewModel) fetchPreview(cardID string) tea.Cmd {
	return func() tea.Msg {
		preview, err := m.engine.PreviewCard(context.Background(), cardID)
		if err != nil {
			return errMsg(err)
		}
		return previewMsg(preview)
	}
}

func (m ReviewModel) endSession(quitEarly bool) tea.Cmd {
	return func() tea.Msg {
		rec, unlocked, err := m.engine.EndSession(context.Background(), quitEarly)
		if err != nil {
			return errMsg(err)
		}
		return sessionDoneMsg{record: rec, unlocked: unlocked}
	}
}

// advance moves to the next card or ends the session after the last one.
func (m ReviewModel) advance() (ReviewModel, tea.Cmd) {
	m.index++
	m.preview = nil
	if m.index >= len(m.cards) {
		return m, m.endSession(false)
	}
	m.phase = phaseFront
	return m, nil
}

// Update handles messages
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case previewMsg:
		m.preview = map[srs.Quality]srs.State(msg)
		return m, nil

	case reviewedMsg:
		m.err = nil
		return m.advance()

	case skippedMsg:
		m.err = nil
		return m.advance()

	case sessionDoneMsg:
		m.record = msg.record
		m.unlocked = msg.unlocked
		m.phase = phaseSummary
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case errMsg:
		m.err = error(msg)
		// Ending already failed once; don't trap the user behind a
		// retry loop when they asked to leave.
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m ReviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		if m.phase == phaseSummary {
			return m, tea.Quit
		}
		m.quitting = true
		return m, m.endSession(true)
	}

	switch m.phase {
	case phaseFront:
		switch key {
		case " ", "enter":
			m.phase = phaseBack
			return m, m.fetchPreview(m.cards[m.index].ID)
		case "s":
			return m, m.skipCard(m.cards[m.index].ID)
		case "q":
			return m, m.endSession(true)
		}

	case phaseBack:
		switch key {
		case "0", "1", "2", "3", "4", "5":
			q := srs.Quality(key[0] - '0')
			return m, m.submitReview(m.cards[m.index].ID, q)
		case "s":
			return m, m.skipCard(m.cards[m.index].ID)
		case "q":
			return m, m.endSession(true)
		}

	case phaseSummary:
		switch key {
		case "q", "enter", " ":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the current screen
func (m ReviewModel) View() string {
	if m.quitting && m.phase != phaseSummary {
		return ""
	}

	switch m.phase {
	case phaseSummary:
		return m.renderSummary()
	default:
		return m.renderCard()
	}
}

func (m ReviewModel) renderCard() string {
	if m.index >= len(m.cards) {
		return ""
	}
	card := m.cards[m.index]

	var content string
	content += headerStyle.Render(" recall review ") + "\n"

	done := float64(m.index) / float64(len(m.cards))
	content += labelStyle.Render(fmt.Sprintf("Card %d/%d  ", m.index+1, len(m.cards))) +
		m.progress.ViewAs(done) + "\n"

	content += "\n" + cardStyle.Render(card.Front) + "\n"
	if len(card.Tags) > 0 {
		content += dimStyle.Render("  #"+strings.Join(card.Tags, " #")) + "\n"
	}

	if m.phase == phaseBack {
		content += "\n" + sectionStyle.Render("┃ Answer") + "\n"
		content += cardStyle.Render(card.Back) + "\n"
		content += "\n" + m.renderRateBar()
	} else {
		footer := footerKeyStyle.Render("[space]") + footerStyle.Render(" reveal  ") +
			footerKeyStyle.Render("[s]") + footerStyle.Render(" skip  ") +
			footerKeyStyle.Render("[q]") + footerStyle.Render(" end")
		content += "\n" + footer
	}

	if m.err != nil {
		content += "\n" + errorStyle.Render("✗ "+m.err.Error())
	}

	return containerStyle.Render(content)
}

// renderRateBar lists the grade keys with their comeback hints.
func (m ReviewModel) renderRateBar() string {
	var lines []string
	for q := srs.Blackout; q <= srs.Perfect; q++ {
		key := footerKeyStyle.Render(fmt.Sprintf("[%d]", int(q)))
		label := fmt.Sprintf("%-9s", q.String())
		if !q.Successful() {
			label = warnStyle.Render(label)
		} else {
			label = valueStyle.Render(label)
		}

		hint := ""
		if st, ok := m.preview[q]; ok {
			hint = dimStyle.Render(FormatInterval(st.Interval))
			if !q.Successful() {
				hint = dimStyle.Render("retry soon")
			}
		}
		lines = append(lines, fmt.Sprintf("  %s %s %s", key, label, hint))
	}
	footer := footerKeyStyle.Render("[s]") + footerStyle.Render(" skip  ") +
		footerKeyStyle.Render("[q]") + footerStyle.Render(" end")
	return strings.Join(lines, "\n") + "\n" + footer
}

func (m ReviewModel) renderSummary() string {
	var content string
	content += headerStyle.Render(" session complete ") + "\n"

	if m.record != nil {
		rec := m.record
		content += "\n" + sectionStyle.Render("┃ Results") + "\n"
		content += labelStyle.Render("  Studied: ") + valueStyle.Render(fmt.Sprintf("%d", rec.CardsStudied)) +
			labelStyle.Render("  Correct: ") + goodStyle.Render(fmt.Sprintf("%d", rec.CorrectAnswers)) +
			labelStyle.Render("  Missed: ") + errorStyle.Render(fmt.Sprintf("%d", rec.IncorrectAnswers)) +
			labelStyle.Render("  Skipped: ") + dimStyle.Render(fmt.Sprintf("%d", rec.SkippedCards)) + "\n"

		if rec.CardsStudied > 0 {
			content += labelStyle.Render("  Accuracy: ") + valueStyle.Render(FormatAccuracy(rec.Accuracy())) + "\n"
		}
		if rec.EndTime != nil {
			content += labelStyle.Render("  Time: ") +
				valueStyle.Render(FormatDuration(rec.Duration())) + "\n"
		}
	}

	if len(m.unlocked) > 0 {
		content += "\n" + sectionStyle.Render("┃ Unlocked") + "\n"
		for _, a := range m.unlocked {
			content += goodStyle.Render("  ✓ "+a.Name) + dimStyle.Render("  "+a.Description) + "\n"
		}
	}

	if m.err != nil {
		content += "\n" + errorStyle.Render("✗ "+m.err.Error()) + "\n"
	}

	content += "\n" + footerKeyStyle.Render("[q]") + footerStyle.Render(" quit")
	return containerStyle.Render(content)
}
