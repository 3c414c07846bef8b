package main

import "github.com/pfrederiksen/pigeon-go/internal/cli"

func main() {
	cli.Execute()
}
