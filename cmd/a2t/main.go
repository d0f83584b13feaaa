package main

import "audio-notes/cmd/a2t/cmd"

func main() {
	cmd.Execute()
}
