package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func TestSelect(t *testing.T) {
	mockRun := new(MockRunner)
	mockRun.On("Output", mock.Anything, "internet/github\ninternet/reddit", "dmenu", []string{}).
		Return("internet/github\n", nil)

	choice, err := Select(context.Background(), mockRun, "dmenu",
		[]string{"internet/github", "internet/reddit"})
	require.NoError(t, err)
	assert.Equal(t, "internet/github", choice)
	mockRun.AssertExpectations(t)
}

func TestSelectWithArguments(t *testing.T) {
	mockRun := new(MockRunner)
	mockRun.On("Output", mock.Anything, "a\nb", "rofi", []string{"-dmenu", "-i"}).
		Return("b\n", nil)

	choice, err := Select(context.Background(), mockRun, "rofi -dmenu -i", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", choice)
}

func TestSelectNothingChosen(t *testing.T) {
	mockRun := new(MockRunner)
	mockRun.On("Output", mock.Anything, mock.Anything, "dmenu", []string{}).
		Return("\n", nil)

	_, err := Select(context.Background(), mockRun, "dmenu", []string{"a"})
	assert.ErrorIs(t, err, ErrNothingChosen)
}

func TestSelectEmptyCommand(t *testing.T) {
	_, err := Select(context.Background(), new(MockRunner), "  ", []string{"a"})
	assert.Error(t, err)
}
