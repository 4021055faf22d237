// cmd/passkeeper/cmd/generate.go
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"passkeeper/internal/clipboard"
	"passkeeper/internal/domain/password"
	"passkeeper/internal/keeper"
)

// Ниже этого порога генератор просит подтверждение.
const weakEntropyBits = 32.0

var (
	genLength   int
	genEntropy  float64
	genSymbols  bool
	genWords    bool
	genWordPath string
	genPrint    bool
	genClip     bool
	genTimeout  int
	genForce    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [группа/запись]",
	Short: "Сгенерировать случайный пароль",
	Long: `Команда generate создает случайный пароль и по умолчанию кладет
его в буфер обмена. С аргументом пароль дополнительно сохраняется
в указанную запись (старый пароль уходит в old_password).

Флаг --words генерирует парольную фразу из слов словаря вместо
случайных символов. Флаг --entropy задает желаемую стойкость
в битах, и длина вычисляется из нее.

Примеры:
	passkeeper generate
	passkeeper generate -l 32 --print
	passkeeper generate --words -e 80
	passkeeper generate internet/github`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Флаги перекрывают конфигурацию, конфигурация - умолчания
		if !cmd.Flags().Changed("length") {
			genLength = viper.GetInt("generate.length")
		}
		if !cmd.Flags().Changed("symbols") {
			genSymbols = viper.GetBool("generate.symbols")
		}
		if !cmd.Flags().Changed("words") {
			genWords = viper.GetBool("generate.words")
		}
		if !cmd.Flags().Changed("timeout") {
			genTimeout = viper.GetInt("clip.timeout")
		}
		genEntropy, err := entropyOption(cmd.Flags().Changed("entropy"), genEntropy)
		if err != nil {
			return err
		}

		pass, entropy, err := password.Generate(password.Options{
			Length:   genLength,
			Entropy:  genEntropy,
			Symbols:  genSymbols,
			Words:    genWords,
			WordPath: genWordPath,
		})
		if err != nil {
			return err
		}

		if entropy < weakEntropyBits {
			message := fmt.Sprintf("Слабый пароль (%.1f бит энтропии). Продолжить?", entropy)
			if !app.Confirm(message, genForce) {
				return nil
			}
		}

		var oldPass string
		var hadOld bool
		if len(args) == 1 {
			name := args[0]
			oldPass, hadOld, err = app.Insert(cmd.Context(), name, pass, genForce)
			if errors.Is(err, keeper.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			if hadOld {
				fmt.Printf("✅ Пароль %s обновлен (старый сохранен в old_password)\n", name)
			} else {
				fmt.Printf("✅ Пароль %s сохранен\n", name)
			}
		}

		fmt.Printf("Сгенерирован пароль с %.3f битами энтропии\n", entropy)

		if genPrint {
			fmt.Println(pass)
		}
		if genClip {
			// При перезаписи сначала даем старый пароль: он нужен,
			// чтобы сменить пароль на самом сайте
			if hadOld {
				if err := clipboard.Copy(oldPass, 0); err != nil {
					return err
				}
				fmt.Print("Старый пароль в буфере обмена. Enter - скопировать новый... ")
				fmt.Scanln()
			}
			if err := clipboard.Copy(pass, genTimeout); err != nil {
				return err
			}
			if genTimeout > 0 {
				fmt.Printf("✓ Пароль скопирован в буфер обмена (очистка через %d с)\n", genTimeout)
			} else {
				fmt.Println("✓ Пароль скопирован в буфер обмена")
			}
		}
		return nil
	},
}

// entropyOption различает не заданный флаг энтропии и заданный
// бессмысленно: явный --entropy обязан быть положительным, а не
// молча уступать длине.
func entropyOption(changed bool, bits float64) (float64, error) {
	if !changed {
		return 0, nil
	}
	if bits <= 0 {
		return 0, fmt.Errorf("энтропия должна быть больше нуля: %g", bits)
	}
	return bits, nil
}

func init() {
	generateCmd.Flags().IntVarP(&genLength, "length", "l", 20, "длина пароля")
	generateCmd.Flags().Float64VarP(&genEntropy, "entropy", "e", 0, "желаемая энтропия в битах (перекрывает длину)")
	generateCmd.Flags().BoolVarP(&genSymbols, "symbols", "s", true, "включать знаки пунктуации")
	generateCmd.Flags().BoolVarP(&genWords, "words", "w", false, "парольная фраза из слов словаря")
	generateCmd.Flags().StringVar(&genWordPath, "wordlist", "", "путь к файлу словаря")
	generateCmd.Flags().BoolVarP(&genPrint, "print", "p", false, "напечатать пароль на экран")
	generateCmd.Flags().BoolVarP(&genClip, "clip", "c", true, "скопировать пароль в буфер обмена")
	generateCmd.Flags().IntVarP(&genTimeout, "timeout", "t", 45, "таймаут очистки буфера в секундах (0 - не очищать)")
	generateCmd.Flags().BoolVarP(&genForce, "force", "f", false, "не спрашивать подтверждения")
}
