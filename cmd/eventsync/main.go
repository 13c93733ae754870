package main

import "github.com/pfrederiksen/eventsync/internal/cli"

func main() {
	cli.Execute()
}
