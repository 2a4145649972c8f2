package main

import "nexus-packages/internal/cli"

func main() {
	cli.Execute()
}
