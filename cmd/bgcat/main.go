package main

import (
	"github.com/JMaramara/boardgame/internal/cli"
)

func main() {
	cli.Execute()
}
