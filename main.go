package main

import "dev-launcher/cmd"

func main() {
	cmd.Execute()
}
