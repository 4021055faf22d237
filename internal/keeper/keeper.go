package keeper

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"passkeeper/internal/config"
	"passkeeper/internal/domain/vault"
	"passkeeper/internal/gpg"
	"passkeeper/internal/runner"
	"passkeeper/internal/storage"
)

// ErrAborted возвращается, когда пользователь ответил "нет"
// на запрос подтверждения. Команды завершаются молча и успешно.
var ErrAborted = errors.New("aborted by user")

// App связывает конфигурацию, хранилище и внешние программы.
// Создается один раз на запуск в PersistentPreRunE корневой команды.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Run    runner.Runner
	GPG    *gpg.GPG
	Store  *storage.Store

	stdin io.Reader
}

func New(cfg *config.Config, log *slog.Logger) *App {
	run := runner.New()
	g := gpg.New(run)
	return &App{
		Config: cfg,
		Log:    log,
		Run:    run,
		GPG:    g,
		Store:  storage.New(cfg, g, run, log),
		stdin:  os.Stdin,
	}
}

// Close снимает блокировку базы и выполняет post-write хук.
func (a *App) Close(ctx context.Context) error {
	return a.Store.Close(ctx)
}

// Confirm спрашивает подтверждение у пользователя.
// force=true пропускает вопрос.
func (a *App) Confirm(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Printf("%s [y/N]: ", message)
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// ConfirmOverwrite спрашивает подтверждение, если файл существует.
func (a *App) ConfirmOverwrite(path string, force bool) bool {
	if _, err := os.Stat(path); err != nil {
		return true
	}
	return a.Confirm(fmt.Sprintf("Перезаписать %s?", path), force)
}

// Insert вставляет пароль в запись, не трогая остальные поля.
// При перезаписи существующего пароля старое значение сохраняется
// в поле old_password, а перезапись требует подтверждения.
// Возвращает старый пароль, если он был.
func (a *App) Insert(ctx context.Context, name, password string, force bool) (string, bool, error) {
	if vault.IsGroupPath(name) {
		return "", false, fmt.Errorf("%s - это группа", name)
	}

	db, err := a.Store.Load(ctx, true)
	if err != nil {
		return "", false, err
	}

	var oldPassword string
	var hadOld bool

	e, err := db.Entry(name)
	switch {
	case errors.Is(err, vault.ErrNotFound):
		e = vault.NewEntry("")
		e.SetField("password", password)
		if err := db.PutEntry(name, e); err != nil {
			return "", false, err
		}
	case err != nil:
		return "", false, err
	default:
		if old, ok := e.Field("password"); ok {
			if !a.Confirm(fmt.Sprintf("Перезаписать %s?", name), force) {
				return "", false, ErrAborted
			}
			oldPassword, hadOld = old, true
			e.SetField("old_password", old)
		}
		e.SetField("password", password)
	}

	if err := a.Store.Save(ctx, db); err != nil {
		return "", false, err
	}
	return oldPassword, hadOld, nil
}

// SetStdin подменяет источник ответов на подтверждения (для тестов).
func (a *App) SetStdin(r io.Reader) {
	a.stdin = r
}
