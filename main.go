package main

import "github.com/user/soccer-extract-cli/cmd"

func main() {
	cmd.Execute()
}
