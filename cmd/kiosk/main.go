package main

import "github.com/diogo/kioskfeed/internal/commands"

func main() {
	commands.Execute()
}
