package main

import "addressable-resources/cmd"

func main() {
	cmd.Execute()
}
