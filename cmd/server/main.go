package main

import "staffdesk/internal/app/server"

func main() {
	server.Run()
}
