package main

import "mention-scanner/cmd"

func main() {
	cmd.Execute()
}
