package main

import "github.com/thereayou/pinboard/cmd/server"

func main() {
	server.NewServer().Run()
}
