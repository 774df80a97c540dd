package main

import "github.com/invtrack/apiserver/cmd"

func main() {
	cmd.Execute()
}
