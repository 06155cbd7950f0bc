package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/drawdown/internal/compare"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/domain"
)

const testYAML = `
portfolio:
  age: 65
  accounts:
    - id: savings
      type: cash
      balance: 500000
strategy:
  type: fixed
  initial_withdrawal: 20000
simulation:
  years: 5
  num_simulations: 4
  seed: 1
  parallel: false
scenarios:
  - name: lavish
    strategy:
      type: fixed
      initial_withdrawal: 200000
`

func testConfig(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().Parse([]byte(testYAML))
	require.NoError(t, err)
	return cfg
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// drain runs the job command until its completion message arrives.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	msg := cmd()
	for {
		switch msg.(type) {
		case SimulationCompleteMsg, ComparisonCompleteMsg:
			m, _ = update(t, m, msg)
			return m
		case ProgressMsg:
			msg = waitForEvent(m.events)()
		default:
			t.Fatalf("unexpected message %T", msg)
		}
	}
}

func TestLoadConfigCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0644))

	msg := loadConfigCmd(path)()
	loaded, ok := msg.(ConfigLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, 5, loaded.Config.Simulation.Years)

	_, ok = loadConfigCmd(filepath.Join(t.TempDir(), "missing.yaml"))().(ErrorMsg)
	assert.True(t, ok)
}

func TestResolveScenario(t *testing.T) {
	cfg := testConfig(t)
	base, err := resolveScenario(cfg, compare.BaseName)
	require.NoError(t, err)
	assert.Same(t, cfg, base)

	lavish, err := resolveScenario(cfg, "lavish")
	require.NoError(t, err)
	assert.Equal(t, "200000", lavish.Strategy.InitialWithdrawal.String())

	_, err = resolveScenario(cfg, "nope")
	assert.Error(t, err)
}

func TestModel_Navigation(t *testing.T) {
	m := NewModel("plan.yaml")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, SceneScenarios, m.currentScene)

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, cmd())
	assert.Equal(t, SceneHome, m.currentScene)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ErrorIsDismissedByAnyKey(t *testing.T) {
	m := NewModel("plan.yaml")
	m, _ = update(t, m, ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "Error: boom")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Nil(t, cmd)
	assert.NoError(t, m.err)
	assert.Equal(t, SceneHome, m.currentScene)
}

func TestModel_RunScenario(t *testing.T) {
	m := NewModel("plan.yaml")
	m, _ = update(t, m, ConfigLoadedMsg{Config: testConfig(t)})

	m, cmd := update(t, m, RunScenarioMsg{ScenarioName: compare.BaseName})
	require.NotNil(t, cmd)
	assert.True(t, m.running)
	assert.Contains(t, m.View(), "Simulating base")

	job := simulateCmd(context.Background(), m.config, compare.BaseName, m.events)
	m = drain(t, m, job)
	assert.False(t, m.running)
	require.NoError(t, m.err)
	assert.Contains(t, m.resultsModel.View(), "100.0%")
}

func TestModel_RunComparison(t *testing.T) {
	m := NewModel("plan.yaml")
	m, _ = update(t, m, ConfigLoadedMsg{Config: testConfig(t)})
	m, _ = update(t, m, RunComparisonMsg{})
	require.True(t, m.running)

	m = drain(t, m, compareCmd(context.Background(), m.config, m.events))
	require.NoError(t, m.err)
	view := m.compareModel.View()
	assert.Contains(t, view, "lavish")
	assert.Contains(t, view, "base")
}

func TestModel_CancelledRunReportsError(t *testing.T) {
	m := NewModel("plan.yaml")
	m, _ = update(t, m, ConfigLoadedMsg{Config: testConfig(t)})
	m, _ = update(t, m, RunScenarioMsg{ScenarioName: compare.BaseName})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m = drain(t, m, simulateCmd(ctx, m.config, compare.BaseName, m.events))
	assert.ErrorIs(t, m.err, context.Canceled)
}

func TestSendProgress_KeepsSlotForCompletion(t *testing.T) {
	events := make(chan tea.Msg, 4)
	for i := 1; i <= 10; i++ {
		sendProgress(events, ProgressMsg{Done: i, Total: 10})
	}
	assert.Len(t, events, 3)

	select {
	case events <- SimulationCompleteMsg{ScenarioName: compare.BaseName}:
	default:
		t.Fatal("completion message would block")
	}
}
