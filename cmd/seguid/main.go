package main

import (
	"log"

	"seguid/cmd/seguid/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		log.Fatal(err)
	}
}
