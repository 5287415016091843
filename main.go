package main

import "world-merger/cmd"

func main() {
	cmd.Execute()
}
