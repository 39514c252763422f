package main

import "github.com/Ameysr/codex-frontend/cmd"

func main() {
	cmd.Execute()
}
