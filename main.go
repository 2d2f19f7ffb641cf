package main

import "github.com/CraigKelly/mcmcbugs/cmd"

func main() {
	cmd.Execute()
}
