package main

import (
	"github.com/pagemill/pagemill/internal/cli"
)

func main() {
	cli.Execute(cli.NewRootCommand())
}
