package main

import (
	_ "github.com/joho/godotenv/autoload"

	"docqa/internal/cli"
)

func main() {
	cli.Execute()
}
