package main

import "scaffold-wizard/cmd"

func main() {
	cmd.Execute()
}
