package main

import (
	"os"

	"github.com/ziyan/shuati/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
