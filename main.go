package main

import "openmusic/cmd"

func main() {
	cmd.Execute()
}
