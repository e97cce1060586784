package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medichat/internal/domain"
)

type fakeAssistant struct {
	processCalls int
	askCalls     int
	lastQuestion string
	summary      string
	processErr   error
	reply        domain.ConversationTurn
	askErr       error
	history      []domain.ConversationTurn
	ready        bool
}

func (f *fakeAssistant) ProcessPaths(paths []string) (string, error) {
	f.processCalls++
	return f.summary, f.processErr
}

func (f *fakeAssistant) Ask(question string) (domain.ConversationTurn, error) {
	f.askCalls++
	f.lastQuestion = question
	return f.reply, f.askErr
}

func (f *fakeAssistant) History() []domain.ConversationTurn { return f.history }
func (f *fakeAssistant) Ready() bool                        { return f.ready }

func TestUpdate_ProcessedMsg(t *testing.T) {
	m := New(&fakeAssistant{}, nil)

	updated, _ := m.Update(processedMsg{summary: "Corpus overview."})
	got := updated.(Model)
	assert.Equal(t, "Corpus overview.", got.summary)
	assert.Contains(t, got.status, "processed successfully")
}

func TestUpdate_ProcessedMsg_EmptyCorpus(t *testing.T) {
	m := New(&fakeAssistant{}, nil)

	updated, _ := m.Update(processedMsg{err: domain.ErrEmptyCorpus})
	got := updated.(Model)
	assert.Contains(t, got.status, "No text could be extracted")
}

func TestUpdate_ProcessedMsg_OtherError(t *testing.T) {
	m := New(&fakeAssistant{}, nil)

	updated, _ := m.Update(processedMsg{err: errors.New("qdrant unreachable")})
	got := updated.(Model)
	assert.Contains(t, got.status, "qdrant unreachable")
}

func TestUpdate_EnterAsks(t *testing.T) {
	svc := &fakeAssistant{
		reply: domain.ConversationTurn{
			Role:      domain.RoleAssistant,
			Content:   "Aspirin reduces fever.",
			Timestamp: "09:30",
		},
		ready: true,
	}
	m := New(svc, nil)
	m.input.SetValue("What reduces fever?")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(Model)

	assert.Equal(t, 1, svc.askCalls)
	assert.Equal(t, "What reduces fever?", svc.lastQuestion)
	assert.Empty(t, got.input.Value(), "input resets after sending")
	assert.Contains(t, got.status, "09:30")
}

func TestUpdate_EnterEmptyInputIgnored(t *testing.T) {
	svc := &fakeAssistant{}
	m := New(svc, nil)
	m.input.SetValue("   ")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Zero(t, svc.askCalls)
}

func TestUpdate_EnterNotReadyNotice(t *testing.T) {
	svc := &fakeAssistant{
		reply: domain.ConversationTurn{Role: domain.RoleAssistant, Content: domain.NotReadyNotice},
	}
	m := New(svc, nil)
	m.input.SetValue("question")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(Model)
	assert.Contains(t, got.status, "Ctrl+R")
}

func TestUpdate_CtrlRReprocesses(t *testing.T) {
	svc := &fakeAssistant{}
	m := New(svc, []string{"doc.txt"})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	got := updated.(Model)
	assert.True(t, got.processing)
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(processedMsg)
	assert.True(t, ok)
	assert.Equal(t, 1, svc.processCalls)
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := New(&fakeAssistant{}, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_BeforeSizing(t *testing.T) {
	m := New(&fakeAssistant{}, nil)
	assert.Equal(t, "Loading...", m.View())
}

func TestRenderHistory(t *testing.T) {
	svc := &fakeAssistant{
		history: []domain.ConversationTurn{
			{Role: domain.RoleUser, Content: "What reduces fever?", Timestamp: "09:29"},
			{Role: domain.RoleAssistant, Content: "Aspirin reduces fever.", Timestamp: "09:30"},
		},
	}
	m := New(svc, nil)
	out := m.renderHistory()
	assert.Contains(t, out, "What reduces fever?")
	assert.Contains(t, out, "Aspirin reduces fever.")
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "MediChat")
}
