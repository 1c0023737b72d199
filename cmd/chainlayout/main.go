package main

import "chainlayout/internal/cli"

func main() {
	cli.Execute()
}
