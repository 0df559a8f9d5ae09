package main

import "hanabi_backend/internal/app"

func main() {
	app.Run()
}
