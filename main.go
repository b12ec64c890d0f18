package main

import "github.com/kamal-hamza/gridrisk/cmd"

func main() {
	cmd.Execute()
}
