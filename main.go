package main

import (
	"github.com/luma/argot/cmd"
)

func main() {
	cmd.Execute()
}
