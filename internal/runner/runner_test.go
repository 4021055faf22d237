package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutput(t *testing.T) {
	r := New()
	ctx := context.Background()

	out, err := r.Output(ctx, "", "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestOutputStdin(t *testing.T) {
	r := New()
	ctx := context.Background()

	out, err := r.Output(ctx, "secret\n", "cat")
	require.NoError(t, err)
	assert.Equal(t, "secret\n", out)
}

func TestExecutableNotFound(t *testing.T) {
	r := New()
	ctx := context.Background()

	_, err := r.Output(ctx, "", "no-such-executable-for-sure")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutableNotFound)
}

func TestCommandFailed(t *testing.T) {
	r := New()
	ctx := context.Background()

	_, err := r.Output(ctx, "", "sh", "-c", "exit 3")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, err.Error(), "3")
}
