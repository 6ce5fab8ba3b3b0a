package main

import "github.com/trainymonked/reviews/internal/app"

func main() {
	app.Run()
}
