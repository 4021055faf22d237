package keeper

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"passkeeper/internal/config"
	"passkeeper/internal/gpg"
	"passkeeper/internal/storage"
)

// MockRunner is a mock implementation of the runner.Runner interface
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) error {
	callArgs := m.Called(ctx, name, args)
	return callArgs.Error(0)
}

func (m *MockRunner) RunInput(ctx context.Context, input string, name string, args ...string) error {
	callArgs := m.Called(ctx, input, name, args)
	return callArgs.Error(0)
}

func (m *MockRunner) Output(ctx context.Context, input string, name string, args ...string) (string, error) {
	callArgs := m.Called(ctx, input, name, args)
	return callArgs.String(0), callArgs.Error(1)
}

const plaintext = "internet:\n  github:\n    password: gh\n    username: takis\n"

func newTestApp(t *testing.T, mockRun *MockRunner) *App {
	t.Helper()
	dbpath := filepath.Join(t.TempDir(), "passkeeper.gpg")
	require.NoError(t, os.WriteFile(dbpath, []byte("ENCRYPTED"), 0o600))

	cfg := &config.Config{Database: dbpath, GPGID: "id"}
	log := slog.Default()
	g := gpg.New(mockRun)

	return &App{
		Config: cfg,
		Log:    log,
		Run:    mockRun,
		GPG:    g,
		Store:  storage.New(cfg, g, mockRun, log),
		stdin:  strings.NewReader(""),
	}
}

func TestInsertNewEntry(t *testing.T) {
	mockRun := new(MockRunner)
	app := newTestApp(t, mockRun)

	var written string
	mockRun.On("Output", mock.Anything, "", "gpg", mock.Anything).Return(plaintext, nil)
	mockRun.On("Output", mock.Anything, mock.Anything, "gpg", []string{"-ear", "id"}).
		Run(func(args mock.Arguments) { written = args.String(1) }).
		Return("CIPHERTEXT", nil)

	_, hadOld, err := app.Insert(context.Background(), "mail/gmail", "secret", false)
	require.NoError(t, err)
	assert.False(t, hadOld)
	assert.Contains(t, written, "gmail:\n    password: secret\n")
}

func TestInsertKeepsOldPassword(t *testing.T) {
	mockRun := new(MockRunner)
	app := newTestApp(t, mockRun)

	var written string
	mockRun.On("Output", mock.Anything, "", "gpg", mock.Anything).Return(plaintext, nil)
	mockRun.On("Output", mock.Anything, mock.Anything, "gpg", []string{"-ear", "id"}).
		Run(func(args mock.Arguments) { written = args.String(1) }).
		Return("CIPHERTEXT", nil)

	old, hadOld, err := app.Insert(context.Background(), "internet/github", "new", true)
	require.NoError(t, err)
	assert.True(t, hadOld)
	assert.Equal(t, "gh", old)
	assert.Contains(t, written, "password: new")
	assert.Contains(t, written, "old_password: gh")
}

func TestInsertDeclined(t *testing.T) {
	mockRun := new(MockRunner)
	app := newTestApp(t, mockRun)
	app.SetStdin(strings.NewReader("n\n"))

	mockRun.On("Output", mock.Anything, "", "gpg", mock.Anything).Return(plaintext, nil)

	_, _, err := app.Insert(context.Background(), "internet/github", "new", false)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestInsertGroupPath(t *testing.T) {
	mockRun := new(MockRunner)
	app := newTestApp(t, mockRun)

	_, _, err := app.Insert(context.Background(), "internet", "secret", true)
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		force    bool
		expected bool
	}{
		{name: "yes", input: "y\n", expected: true},
		{name: "full yes", input: "yes\n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "empty is no", input: "\n", expected: false},
		{name: "force skips prompt", input: "", force: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &App{stdin: strings.NewReader(tt.input)}
			assert.Equal(t, tt.expected, app.Confirm("Удалить?", tt.force))
		})
	}
}
