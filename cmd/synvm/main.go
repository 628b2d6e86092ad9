package main

import (
	"go.brendoncarroll.net/star"

	"synvm.dev/synvm/svmcmd"
)

func main() {
	star.Main(svmcmd.Root())
}
