package main

import "github.com/mikey/mail-triage/internal/cli"

// version is set at build time
var version = "dev"

func main() {
	cli.Execute(version)
}
