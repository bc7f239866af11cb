package main

import (
	"meeting-minutes/cmd/minutes/cmd"
)

func main() {
	cmd.Execute()
}
