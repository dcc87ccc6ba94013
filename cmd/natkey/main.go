package main

import "natkey/internal/cli"

func main() {
	cli.Execute()
}
