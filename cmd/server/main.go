package main

import (
	"github.com/eleven-am/insight-backend/internal/bootstrap"
)

// @title Insight Collector API
// @version 1.0.0
// @description Session recording collector and behaviour analytics

// @host localhost:4000
// @BasePath /

func main() {
	bootstrap.Run()
}
