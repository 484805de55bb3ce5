package main

import "duplicate-monitor/cmd"

func main() {
	cmd.Execute()
}
