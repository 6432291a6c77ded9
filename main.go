package main

import "github.com/tupyy/editor-heartbeat/cmd"

func main() {
	cmd.Execute()
}
