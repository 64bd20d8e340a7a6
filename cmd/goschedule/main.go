package main

import "github.com/dbsmedya/goschedule/cmd/goschedule/cmd"

func main() {
	cmd.Execute()
}
