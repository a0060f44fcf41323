package main

import (
	"os"

	"github.com/abhisek/interviewq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
