package main

import (
	"errors"
	stdLog "log"
	"os"

	"github.com/Astemirdum/raingear-service/rental/app"
	"github.com/Astemirdum/raingear-service/rental/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig()

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("app.Run ", err)
	}
}
