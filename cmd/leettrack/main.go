package main

import "github.com/example/leettrack/internal/cli"

func main() {
	cli.Execute()
}
