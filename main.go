package main

import "dropcord/cmd"

func main() {
	cmd.Execute()
}
