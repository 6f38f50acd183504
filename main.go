package main

import (
	"github.com/philipjonsen/cryptopunks/cmd"
)

func main() {
	cmd.Execute()
}
