package main

import (
	"os"

	"github.com/idilsaglam/smartlist/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
