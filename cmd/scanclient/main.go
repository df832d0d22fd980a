package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/config"
)

func main() {
	server := flag.String("server", envOr("BARCODEBUDDY_URL", "http://localhost:5000"), "BarcodeBuddy server URL")
	username := flag.String("user", envOr("APP_USERNAME", "admin"), "Login username")
	password := flag.String("password", os.Getenv("APP_PASSWORD"), "Login password")
	deliveryNote := flag.String("dn", "", "Delivery note number")
	timeout := flag.Duration("timeout", 60*time.Second, "Request timeout")
	flag.Parse()

	log := config.GetLogger()
	log.SetOutput(os.Stderr)
	entry := log.WithField("module", "scanclient")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := NewClient(*server, *timeout)
	if err := client.Login(ctx, *username, *password); err != nil {
		entry.WithError(err).Fatal("login failed")
	}
	defer client.Logout(context.Background())

	st := newStation(client, *deliveryNote, os.Stdout, entry)
	fmt.Println(helpText)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			cmd, err := parseCommand(line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if !st.handle(ctx, cmd) {
				return
			}
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
