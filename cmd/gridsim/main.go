package main

import "github.com/dd0wney/cluso-gridsim/cmd/gridsim/commands"

func main() {
	commands.Execute()
}
