package main

import "github.com/A5TEX/HSLU-Module-Master/cmd"

func main() {
	cmd.Execute()
}
