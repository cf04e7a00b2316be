package main

import "homelink_backend/internal/app"

func main() {
	app.Run()
}
