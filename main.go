package main

import (
	"os"

	"github.com/bnema/mediastack/internal/adapters/in/cli"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	if version != "" {
		cli.SetVersionInfo(version, commit, date)
	}
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
