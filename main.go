package main

import "github.com/zpark/eliza/cmd"

func main() {
	cmd.Execute()
}
