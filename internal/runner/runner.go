package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var (
	ErrExecutableNotFound = errors.New("executable not found")
	ErrCommandFailed      = errors.New("command failed")
)

// Runner запускает внешние программы (gpg, xdotool, dmenu, хуки).
// Интерфейс нужен, чтобы в тестах подменять реальные процессы.
type Runner interface {
	// Run запускает программу с унаследованными stdin/stdout
	// (интерактивные программы: редактор, хуки).
	Run(ctx context.Context, name string, args ...string) error

	// RunInput запускает программу, передавая input на stdin.
	// Stdout наследуется от процесса.
	RunInput(ctx context.Context, input string, name string, args ...string) error

	// Output запускает программу, передавая input на stdin,
	// и возвращает захваченный stdout.
	Output(ctx context.Context, input string, name string, args ...string) (string, error)
}

// ExecRunner - реализация Runner поверх os/exec.
// Stderr внешних программ всегда отбрасывается.
type ExecRunner struct{}

func New() ExecRunner {
	return ExecRunner{}
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return wrap(cmd.Run(), name)
}

func (r ExecRunner) RunInput(ctx context.Context, input string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = os.Stdout
	return wrap(cmd.Run(), name)
}

func (r ExecRunner) Output(ctx context.Context, input string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := wrap(cmd.Run(), name); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

func wrap(err error, name string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, name)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s: код выхода %d", ErrCommandFailed, name, exitErr.ExitCode())
	}
	return fmt.Errorf("%s: %w", name, err)
}
