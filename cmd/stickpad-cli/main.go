package main

import "stickpad/cmd/stickpad-cli/cmd"

func main() {
	cmd.Execute()
}
