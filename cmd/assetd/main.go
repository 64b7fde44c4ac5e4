package main

import (
	"github.com/LeJamon/goassetd/internal/cli"
)

func main() {
	cli.Execute()
}
