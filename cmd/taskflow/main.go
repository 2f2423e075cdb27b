package main

import "taskflow/internal/cli"

func main() {
	cli.Execute()
}
