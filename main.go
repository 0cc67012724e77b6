package main

import "github.com/notargets/tetremesh/cmd"

func main() {
	cmd.Execute()
}
