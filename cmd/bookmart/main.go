package main

import (
	"log/slog"
	"os"

	"bookshelf/internal/bookmart"
)

func main() {
	menu := bookmart.NewMenu(bookmart.NewShop(), os.Stdin, os.Stdout)
	if err := menu.Run(); err != nil {
		slog.Error("reading input", "error", err)
		os.Exit(1)
	}
}
