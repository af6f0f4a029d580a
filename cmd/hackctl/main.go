package main

import "github.com/itamhack/hackctl/cmd/hackctl/cmd"

func main() {
	cmd.Execute()
}
