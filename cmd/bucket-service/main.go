package main

import (
	"os"

	"github.com/bucketbuddy/bucketbuddy/bucketservice"
)

func main() {
	if err := bucketservice.Run(); err != nil {
		os.Exit(1)
	}
}
