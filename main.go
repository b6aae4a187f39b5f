package main

import "github.com/rfsense/phasecap/cmd"

func main() {
	cmd.Execute()
}
