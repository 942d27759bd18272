package main

import "refmap/internal/cli"

func main() {
	cli.Execute()
}
