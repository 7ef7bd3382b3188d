package main

import "github.com/mcoot/hvztracker/internal/cli"

func main() {
	cli.Execute()
}
