package main

import "github.com/notargets/gocrit/cmd"

func main() {
	cmd.Execute()
}
