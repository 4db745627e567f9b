package main

import "announcehub/cmd"

func main() {
	cmd.Execute()
}
