package main

import "github.com/vibpath/vibgate/cmd"

func main() {
	cmd.Execute()
}
