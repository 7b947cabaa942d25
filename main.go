package main

import "github.com/ObiAU/techdigest/internal/cli"

func main() {
	cli.Execute()
}
