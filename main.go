package main

import (
	"os"

	"github.com/kenny-evitt/bmx-fogbugz/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
