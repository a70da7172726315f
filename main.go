/*
Copyright © 2025 tranvd
*/
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/tranvd/ragchat-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}
}
