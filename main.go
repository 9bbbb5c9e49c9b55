package main

import "github.com/pngstash/pngstash/cmd"

func main() {
	cmd.Execute()
}
