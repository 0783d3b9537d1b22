package main

import "github.com/newshound/newshound/cmd"

func main() {
	cmd.Execute()
}
