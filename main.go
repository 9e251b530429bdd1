package main

import (
	"urlsucker/internal/cli"
)

func main() {
	cli.Execute()
}
