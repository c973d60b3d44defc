package main

import "shopsync/cmd"

func main() {
	cmd.Execute()
}
