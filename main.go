package main

import "github.com/vispy/rfbkit/cmd"

func main() {
	cmd.Execute()
}
