package main

import (
	"github.com/restobook/app/cmd"
)

// @title Restobook API
// @version 1.0
// @description Restaurant table reservations: availability, bookings and a staff dashboard.

// @host  localhost:3000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cmd.Execute()
}
