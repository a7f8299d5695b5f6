package main

import "backend-launcher/cmd"

func main() {
	cmd.Execute()
}
