package x11

import (
	"context"
	"strconv"
	"strings"

	"passkeeper/internal/runner"
)

// Window - активное окно X11.
type Window struct {
	ID    string
	Title string
}

// ActiveWindow возвращает id и заголовок активного окна через xdotool.
func ActiveWindow(ctx context.Context, run runner.Runner) (Window, error) {
	id, err := run.Output(ctx, "", "xdotool", "getactivewindow")
	if err != nil {
		return Window{}, err
	}
	id = strings.TrimSpace(id)

	title, err := run.Output(ctx, "", "xdotool", "getwindowname", id)
	if err != nil {
		return Window{}, err
	}
	return Window{ID: id, Title: strings.TrimSpace(title)}, nil
}

// Keyboard вводит текст и нажимает клавиши через xdotool.
type Keyboard struct {
	run   runner.Runner
	delay int // задержка между нажатиями, мс
}

func NewKeyboard(run runner.Runner, delay int) *Keyboard {
	return &Keyboard{run: run, delay: delay}
}

// Type печатает текст как последовательность нажатий.
func (k *Keyboard) Type(ctx context.Context, text string) error {
	return k.run.Run(ctx, "xdotool", "type", "--clearmodifiers",
		"--delay", strconv.Itoa(k.delay), text)
}

// Key нажимает одну клавишу по имени (Tab, Return, ctrl+a и т.п.).
func (k *Keyboard) Key(ctx context.Context, name string) error {
	return k.run.Run(ctx, "xdotool", "key", name)
}
