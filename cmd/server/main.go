package main

import "github.com/conquergate/conquergate/internal/cli"

func main() {
	cli.Execute()
}
