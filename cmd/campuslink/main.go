package main

import "github.com/campuslink/campuslink/cmd/campuslink/cmd"

func main() {
	cmd.Execute()
}
