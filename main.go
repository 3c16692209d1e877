package main

import "github.com/agentic-research/querytree/cmd"

func main() {
	cmd.Execute()
}
