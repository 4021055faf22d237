package logger

import (
	"log/slog"
	"os"

	"passkeeper/internal/config"
)

// New создает логгер в зависимости от окружения.
// Для local - человекочитаемый текстовый вывод с уровнем DEBUG,
// для dev - JSON с уровнем DEBUG, для prod - JSON с уровнем INFO.
// Логи пишутся в stderr, чтобы не мешать выводу команд.
func New(env string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return setupPrettySlog()
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
}

func setupPrettySlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
