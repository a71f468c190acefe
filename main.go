package main

import "github.com/josephlewis42/modoki/cmd"

func main() {
	cmd.Execute()
}
