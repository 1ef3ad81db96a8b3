// Command server runs the MindCure HTTP and WebSocket API.
//
// Usage:
//
//	server [-config path/to/config.yaml] [-env-help]
//
// Without -config the file comes from CONFIG_PATH or ./config.yaml; the
// environment always overrides it. SIGINT and SIGTERM trigger a graceful
// shutdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/mindcure-backend/internal/app"
	"github.com/heartmarshall/mindcure-backend/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	envHelp := flag.Bool("env-help", false, "list the environment variables and exit")
	flag.Parse()

	if *envHelp {
		text, err := config.Describe()
		if err != nil {
			log.Fatalf("server: %v", err)
		}
		fmt.Println(text)
		return
	}

	if *configPath != "" {
		if err := os.Setenv("CONFIG_PATH", *configPath); err != nil {
			log.Fatalf("server: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
