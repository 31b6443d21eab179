package main

import (
	"os"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
