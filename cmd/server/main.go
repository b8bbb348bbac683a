package main

import (
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/cmd"
)

func main() {
	cmd.Execute()
}
