package main

import "blogapp_backend/internal/app"

func main() {
	app.Run()
}
