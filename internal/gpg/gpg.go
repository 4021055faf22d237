package gpg

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"passkeeper/internal/runner"
)

var ErrNoSecretKey = errors.New("no gpg secret keys found")

// Ищем адрес в угловых скобках в выводе gpg --list-secret-keys.
var keyIDPattern = regexp.MustCompile(`<(.*)>`)

// GPG шифрует и расшифровывает базу, вызывая внешний gpg.
// Ключами и агентом управляет сам gpg, мы только передаем данные.
type GPG struct {
	run runner.Runner
}

func New(run runner.Runner) *GPG {
	return &GPG{run: run}
}

// Decrypt расшифровывает содержимое файла.
func (g *GPG) Decrypt(ctx context.Context, path string) (string, error) {
	out, err := g.run.Output(ctx, "", "gpg", "-d", path)
	if err != nil {
		return "", fmt.Errorf("ошибка расшифровки базы: %w", err)
	}
	return out, nil
}

// Encrypt шифрует данные для указанного получателя (ASCII armor).
func (g *GPG) Encrypt(ctx context.Context, data, keyID string) (string, error) {
	out, err := g.run.Output(ctx, data, "gpg", "-ear", keyID)
	if err != nil {
		return "", fmt.Errorf("ошибка шифрования базы: %w", err)
	}
	return out, nil
}

// DefaultKeyID возвращает идентификатор первого секретного ключа.
func (g *GPG) DefaultKeyID(ctx context.Context) (string, error) {
	out, err := g.run.Output(ctx, "", "gpg", "--list-secret-keys")
	if err != nil {
		return "", err
	}
	match := keyIDPattern.FindStringSubmatch(out)
	if match == nil {
		return "", ErrNoSecretKey
	}
	return match[1], nil
}
