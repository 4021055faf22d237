package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"
)

const (
	letters     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits      = "0123456789"
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	wordlistName = "eff_large_wordlist.txt"
)

// Директории, где ищется словарь для парольных фраз.
var wordlistDirs = []string{
	"/usr/local/share/passkeeper",
	"/usr/share/passkeeper",
}

var (
	ErrEmptyPool      = errors.New("empty character pool")
	ErrNoWordlist     = errors.New("wordlist not found")
	ErrInvalidOptions = errors.New("invalid generator options")
)

// Options задает параметры генерации пароля.
// Если Entropy > 0, длина вычисляется из нее и Length игнорируется.
type Options struct {
	Length   int
	Entropy  float64
	Symbols  bool   // добавить знаки пунктуации к буквам и цифрам
	Words    bool   // парольная фраза из слов словаря вместо символов
	WordPath string // путь к словарю (иначе стандартные директории)
}

// Generate возвращает случайный пароль и его энтропию в битах.
// Источник случайности - crypto/rand, выбор равномерный.
func Generate(opts Options) (string, float64, error) {
	var pool []string
	var separator string

	if opts.Words {
		words, err := loadWordlist(opts.WordPath)
		if err != nil {
			return "", 0, err
		}
		pool = words
		separator = " "
	} else {
		charset := letters + digits
		if opts.Symbols {
			charset += punctuation
		}
		pool = strings.Split(charset, "")
	}

	if len(pool) < 2 {
		return "", 0, ErrEmptyPool
	}

	bitsPerChoice := math.Log2(float64(len(pool)))
	length := opts.Length
	if opts.Entropy > 0 {
		length = int(math.Ceil(opts.Entropy / bitsPerChoice))
	}
	if length < 1 {
		return "", 0, fmt.Errorf("%w: длина %d", ErrInvalidOptions, length)
	}
	entropy := float64(length) * bitsPerChoice

	parts := make([]string, length)
	for i := range parts {
		choice, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
		if err != nil {
			return "", 0, fmt.Errorf("ошибка источника случайности: %w", err)
		}
		parts[i] = pool[choice.Int64()]
	}

	return strings.Join(parts, separator), entropy, nil
}

func loadWordlist(path string) ([]string, error) {
	if path == "" {
		for _, dir := range wordlistDirs {
			candidate := filepath.Join(dir, wordlistName)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return nil, ErrNoWordlist
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoWordlist, path)
	}

	words := strings.Split(strings.TrimSpace(string(data)), "\n")
	for i, word := range words {
		words[i] = strings.TrimSpace(word)
	}
	return words, nil
}
