package main

import (
	"countrycache/internal/app"

	"github.com/sirupsen/logrus"
)

// @title Country Cache API
// @version 1.0
// @description Caches country metadata with exchange rates and an estimated GDP.
// @BasePath /
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("application stopped")
	}
}
