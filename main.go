package main

import "github.com/ckhero/content-tree/cmd"

func main() {
	cmd.Execute()
}
