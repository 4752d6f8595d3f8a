package main

import (
	"github.com/NVIDIA/craftgrid/pkg/cli"
)

func main() {
	cli.Execute()
}
