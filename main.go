package main

import "github.com/kozaktomas/player-verify/cmd"

func main() {
	cmd.Execute()
}
