package main

import "github.com/alexiusacademia/gocross/cmd"

func main() {
	cmd.Execute()
}
