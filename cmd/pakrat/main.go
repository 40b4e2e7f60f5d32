package main

import (
	"github.com/pakrat-io/pakrat/cmd/pakrat/cmd"
)

func main() {
	cmd.Execute()
}
