package main

import (
	"os"

	"llm-switch/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
