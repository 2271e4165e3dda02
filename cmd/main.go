package main

import "github.com/adanyl0v/go-tasklist/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenSlot()
	defer app.CloseSlot()

	controller := app.MustLoadController()
	app.MustListenAndServeHTTP(controller)
}
