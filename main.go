package main

import "github.com/user/simplereplay-cli/cmd"

func main() {
	cmd.Execute()
}
