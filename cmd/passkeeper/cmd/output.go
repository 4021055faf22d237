package cmd

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	// Ключ до первого двоеточия, за которым идет пробел или конец строки
	keyPattern = regexp.MustCompile(`(?m)(^\s*.*?):(\s)`)
	// Маркер элемента списка
	dashPattern = regexp.MustCompile(`(?m)(^\s*- )`)
)

// echo печатает данные, а если они не помещаются на экран -
// отправляет их в пейджер.
func echo(ctx context.Context, data string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Println(data)
		return nil
	}

	_, height, err := term.GetSize(fd)
	if err != nil || strings.Count(data, "\n")+1 < height {
		fmt.Println(data)
		return nil
	}

	pager := strings.Fields(os.Getenv("PAGER"))
	if len(pager) == 0 {
		pager = []string{"less"}
	}
	if os.Getenv("LESS") == "" {
		os.Setenv("LESS", "FRX")
	}
	return app.Run.RunInput(ctx, data+"\n", pager[0], pager[1:]...)
}

// colorizeYAML подсвечивает ключи и элементы списков в YAML-выводе.
func colorizeYAML(data string) string {
	key := color.New(color.FgHiBlue)
	colon := color.New(color.FgHiYellow)
	dash := color.New(color.FgHiRed)

	data = keyPattern.ReplaceAllString(data, key.Sprint("$1")+colon.Sprint(":")+"$2")
	return dashPattern.ReplaceAllString(data, dash.Sprint("$1"))
}
