package main

import "carswitch/cmd"

func main() {
	cmd.Execute()
}
