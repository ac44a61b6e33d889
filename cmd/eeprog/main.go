package main

import "github.com/consensys/go-eeprog/pkg/cmd"

func main() {
	cmd.Execute()
}
