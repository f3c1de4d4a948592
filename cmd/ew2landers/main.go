package main

import (
	"github.com/910cpr/ew2landers/internal/cli"
)

func main() {
	cli.Execute()
}
