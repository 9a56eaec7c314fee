package main

import (
	"github.com/unnamed-lab/tradelens/internal/cli"
)

func main() {
	cli.Execute()
}
