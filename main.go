package main

import "pockettrip-backend/cmd"

func main() {
	cmd.Run()
}
