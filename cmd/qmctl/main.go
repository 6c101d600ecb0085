package main

import (
	"github.com/veldt-labs/quartermaster/internal/cli"
)

func main() {
	cli.Execute()
}
