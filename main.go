package main

import (
	"log"

	"performance_backend/internals/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
