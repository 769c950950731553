// Package main provides a tool to create catalog login credentials.
//
// The password is read from standard input so it stays out of shell history.
//
// Usage:
//
//	echo 'correct horse' | go run ./cmd/useradd -username alice
//	go run ./cmd/useradd -username alice -db-path ./catalog.db < password.txt
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bookcatalog/catalog-server/internal/auth"
	"github.com/bookcatalog/catalog-server/internal/config"
	"github.com/bookcatalog/catalog-server/internal/genre"
	"github.com/bookcatalog/catalog-server/internal/logger"
	"github.com/bookcatalog/catalog-server/internal/service"
	"github.com/bookcatalog/catalog-server/internal/store/sqlite"
	"github.com/bookcatalog/catalog-server/internal/validation"
)

var username = flag.String("username", "", "Username to create (5-20 characters)")

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
		Writer:      os.Stderr,
	})

	if *username == "" {
		log.Fatal("-username is required")
	}

	password, err := readPassword()
	if err != nil {
		log.Fatal("Failed to read password from stdin", "error", err)
	}

	st, err := sqlite.Open(cfg.Database.Path, log.WithComponent("store"))
	if err != nil {
		log.Fatal("Failed to open database", "path", cfg.Database.Path, "error", err)
	}
	defer st.Close()

	// Credential rules do not depend on genres.
	v := validation.New(genre.Default())
	svc := service.NewAuthService(st, auth.NewMemorySessionStore(), v, log.WithComponent("auth"))

	user, err := svc.CreateUser(context.Background(), *username, password)
	if err != nil {
		st.Close()
		log.Fatal("Failed to create user", "username", *username, "error", err)
	}

	fmt.Printf("Created user %s in %s\n", user.Username, cfg.Database.Path)
}

// readPassword reads the first line of standard input.
func readPassword() (string, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("no password on stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
