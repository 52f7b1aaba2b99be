// Command resetdb deletes the database file so the next server start
// recreates an empty schema and re-seeds the admin account.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/nooblk-98/DevOps-Blog/internal/config"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	if err := os.Remove(cfg.DatabasePath); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("database file already absent:", cfg.DatabasePath)
			return
		}
		fmt.Fprintln(os.Stderr, "remove database:", err)
		os.Exit(1)
	}
	fmt.Println("database reset:", cfg.DatabasePath)
}
