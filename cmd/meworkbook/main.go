// Command meworkbook is a single-user journaling workbook for 2026.
package main

import (
	"os"

	"github.com/roach88/meworkbook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
