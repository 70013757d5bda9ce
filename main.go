package main

import "orec/cmd"

func main() {
	cmd.Execute()
}
