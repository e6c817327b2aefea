package main

import (
	"os"

	"github.com/jazzdrill/jazzdrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
