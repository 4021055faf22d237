package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"passkeeper/internal/runner"
)

var ErrNothingChosen = errors.New("nothing chosen")

// Select предлагает пользователю выбрать один из вариантов через
// внешнюю программу-меню (dmenu или совместимую: rofi -dmenu,
// fzf и т.д.). Варианты передаются по одному на строку на stdin,
// выбор читается из stdout.
func Select(ctx context.Context, run runner.Runner, command string, choices []string) (string, error) {
	words := strings.Fields(command)
	if len(words) == 0 {
		return "", fmt.Errorf("пустая команда меню")
	}

	input := strings.Join(choices, "\n")
	out, err := run.Output(ctx, input, words[0], words[1:]...)
	if err != nil {
		return "", fmt.Errorf("ошибка программы меню: %w", err)
	}

	choice := strings.TrimSpace(out)
	if choice == "" {
		return "", ErrNothingChosen
	}
	return choice, nil
}
