package main

import "solomon-validator/internal/cli"

func main() {
	cli.Main()
}
