package main

import (
	"os"

	"todomvc/pkg/cli"
	"todomvc/pkg/ui"
)

func main() {
	os.Exit(cli.Execute(ui.Run))
}
