package main

import "github.com/jacentio/roster/cmd"

func main() {
	cmd.Execute()
}
