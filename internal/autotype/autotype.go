package autotype

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"passkeeper/internal/domain/vault"
	"passkeeper/internal/x11"
)

var (
	ErrNothingToType = errors.New("nothing to type")
	ErrWindowChanged = errors.New("active window changed")
	ErrFieldMissing  = errors.New("field missing or empty")
)

// Keyboard - то, чем печатаем (в проде xdotool, в тестах фальшивка).
type Keyboard interface {
	Type(ctx context.Context, text string) error
	Key(ctx context.Context, name string) error
}

// Options задает окружение выполнения последовательности.
type Options struct {
	Keyboard     Keyboard
	ActiveWindow func(ctx context.Context) (x11.Window, error)
	Window       x11.Window          // окно на момент выбора записи
	Sleep        func(time.Duration) // по умолчанию time.Sleep
}

// Keys возвращает последовательность для ввода.
//
// Явная последовательность имеет приоритет, затем поле autotype
// записи, затем разумные умолчания: логин-Tab-пароль-Enter, если
// есть оба поля, или пароль-Enter, если есть только пароль.
func Keys(e *vault.Entry, sequence string) ([]string, error) {
	if sequence == "" {
		sequence, _ = e.Field("autotype")
	}
	if sequence == "" {
		_, hasUsername := e.Field("username")
		_, hasPassword := e.Field("password")
		switch {
		case hasUsername && hasPassword:
			sequence = "<username> Tab <password> Return"
		case hasPassword:
			sequence = "<password> Return"
		default:
			return nil, ErrNothingToType
		}
	}
	return strings.Fields(sequence), nil
}

// Perform вводит последовательность в активное окно.
//
// Каждый элемент - либо плейсхолдер поля "<field>", либо пауза
// "!N" в секундах (допустимы дробные), либо имя клавиши для
// xdotool key. Перед каждым элементом проверяется, что активное
// окно не сменилось: печатать пароль в чужое окно нельзя.
func Perform(ctx context.Context, e *vault.Entry, keys []string, opts Options) error {
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for _, key := range keys {
		current, err := opts.ActiveWindow(ctx)
		if err != nil {
			return err
		}
		if current != opts.Window {
			return ErrWindowChanged
		}

		switch {
		case strings.HasPrefix(key, "<") && strings.HasSuffix(key, ">"):
			field := key[1 : len(key)-1]
			value, ok := e.Field(field)
			if !ok || value == "" {
				return fmt.Errorf("%w: %s", ErrFieldMissing, field)
			}
			if err := opts.Keyboard.Type(ctx, value); err != nil {
				return err
			}
		case strings.HasPrefix(key, "!"):
			seconds, err := strconv.ParseFloat(key[1:], 64)
			if err != nil {
				return fmt.Errorf("некорректная пауза '%s': %w", key, err)
			}
			sleep(time.Duration(seconds * float64(time.Second)))
		default:
			if err := opts.Keyboard.Key(ctx, key); err != nil {
				return err
			}
		}
	}
	return nil
}
