package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultEnv          = EnvLocal
	defaultConfigDir    = ".passkeeper"
	defaultClipTimeout  = 45
	defaultGenLength    = 20
	defaultAutotypeMenu = "dmenu"
	defaultAutotypeMs   = 50
)

var ErrNotInitialized = errors.New("config file not found")

type Config struct {
	Env           string `mapstructure:"app_env"`
	Path          string // путь к файлу конфигурации
	Dir           string // директория конфигурации (здесь же живут хуки)
	Database      string `mapstructure:"database"`
	GPGID         string `mapstructure:"gpg_id"`
	Color         bool   `mapstructure:"color"`
	PreReadHook   string // <dir>/hooks/pre-read, если существует
	PostWriteHook string // <dir>/hooks/post-write, если существует
}

// Load загружает конфигурацию клиента.
//
// Порядок приоритета: флаг --config, переменная PASSKEEPER_CONFIG_PATH,
// ~/.passkeeper/config.yaml. Переменные окружения перекрывают значения
// из файла. Если файла нет и allowMissing=false, возвращается
// ErrNotInitialized: пользователь еще не выполнил `passkeeper init`.
func Load(cfgFile string, allowMissing bool) (*Config, error) {
	// Загружаем .env файл если существует
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	viper.SetEnvPrefix("passkeeper")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Значения по умолчанию
	viper.SetDefault("app_env", defaultEnv)
	viper.SetDefault("color", true)
	viper.SetDefault("clip.timeout", defaultClipTimeout)
	viper.SetDefault("generate.length", defaultGenLength)
	viper.SetDefault("generate.symbols", true)
	viper.SetDefault("generate.words", false)
	viper.SetDefault("autotype.menu", defaultAutotypeMenu)
	viper.SetDefault("autotype.delay", defaultAutotypeMs)
	viper.SetDefault("edit.editor", defaultEditor())

	path := resolvePath(cfgFile)

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			if !allowMissing {
				return nil, ErrNotInitialized
			}
		} else {
			return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	cfg.Path = path
	cfg.Dir = filepath.Dir(path)
	cfg.Database = ExpandHome(cfg.Database)

	// Хуки ищем рядом с конфигурацией
	if hook := filepath.Join(cfg.Dir, "hooks", "pre-read"); isFile(hook) {
		cfg.PreReadHook = hook
	}
	if hook := filepath.Join(cfg.Dir, "hooks", "post-write"); isFile(hook) {
		cfg.PostWriteHook = hook
	}

	if !allowMissing {
		if err := cfg.validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// Write записывает начальный файл конфигурации (команда init).
func Write(path, database, gpgID string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}
	data, err := yaml.Marshal(map[string]string{
		"database": database,
		"gpg_id":   gpgID,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("ошибка записи конфигурации: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Database == "" {
		return fmt.Errorf("database не может быть пустым")
	}
	if c.GPGID == "" {
		return fmt.Errorf("gpg_id не может быть пустым")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}

// DefaultPath возвращает путь конфигурации по умолчанию.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, defaultConfigDir, "config.yaml")
}

// ExpandHome разворачивает "~" в начале пути.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

func defaultEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vim"
}

func resolvePath(cfgFile string) string {
	if cfgFile != "" {
		return ExpandHome(cfgFile)
	}
	if env := os.Getenv("PASSKEEPER_CONFIG_PATH"); env != "" {
		return ExpandHome(env)
	}
	return DefaultPath()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
