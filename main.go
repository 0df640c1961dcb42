package main

import "fleet-tracker/cmd"

func main() {
	cmd.Execute()
}
