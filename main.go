package main

import "github.com/fakeyudi/termfolio/cmd"

func main() {
	cmd.Execute()
}
