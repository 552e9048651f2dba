package main

import "github.com/plugworks/repofs/cmd/repofsd/cmd"

func main() {
	cmd.Execute()
}
