package main

import "github.com/jrbyrne/nonogram/cmd"

func main() {
	cmd.Execute()
}
