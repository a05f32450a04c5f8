package main

import (
	"fmt"
	"os"

	"github.com/srozzo/go-termsys/cmd/termprobe/command"
)

func main() {
	if err := command.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
