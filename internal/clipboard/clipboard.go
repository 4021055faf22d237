package clipboard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/atotto/clipboard"
)

// Copy кладет данные в буфер обмена. При timeout > 0 в фоне
// запускается отдельный процесс `passkeeper unclip`, который
// очистит буфер по истечении таймаута. timeout = 0 означает
// что буфер не очищается.
func Copy(data string, timeout int) error {
	if err := clipboard.WriteAll(data); err != nil {
		return fmt.Errorf("ошибка записи в буфер обмена: %w", err)
	}
	if timeout > 0 {
		return spawnUnclip(data, timeout)
	}
	return nil
}

// Clear очищает буфер обмена, но только если он все еще содержит
// то, что мы туда положили: чужое содержимое не трогаем.
func Clear(checksum string) error {
	current, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("ошибка чтения буфера обмена: %w", err)
	}
	if Checksum(current) != checksum {
		return nil
	}
	if err := clipboard.WriteAll(""); err != nil {
		return fmt.Errorf("ошибка очистки буфера обмена: %w", err)
	}
	return nil
}

// Checksum возвращает sha256 данных в hex. Дочернему процессу
// передается хэш, а не сам пароль, чтобы пароль не светился
// в списке процессов.
func Checksum(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

func spawnUnclip(data string, timeout int) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("ошибка определения исполняемого файла: %w", err)
	}

	cmd := exec.Command(self, "unclip",
		"--timeout", strconv.Itoa(timeout),
		"--checksum", Checksum(data),
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ошибка запуска unclip: %w", err)
	}
	// Не ждем дочерний процесс: он переживет родителя
	return cmd.Process.Release()
}
