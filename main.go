package main

import "github.com/observon/sheetsight/cmd"

func main() {
	cmd.Execute()
}
