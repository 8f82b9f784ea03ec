package main

import (
	"log"

	"governance-dashboard/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
