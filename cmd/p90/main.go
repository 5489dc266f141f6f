package main

import "github.com/p90ai/p90/internal/cli"

func main() {
	cli.Execute()
}
