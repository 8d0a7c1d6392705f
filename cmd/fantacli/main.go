package main

import (
	"os"

	"fantassist-backend/cmd/fantacli/cmd"
)

func main() {
	// defaults to the real site when unset
	cmd.BaseUrl = os.Getenv("FANTACALCIO_BASE_URL")
	cmd.Execute()
}
