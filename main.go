package main

import "job-board-backend/cmd"

func main() {
	cmd.Run()
}
