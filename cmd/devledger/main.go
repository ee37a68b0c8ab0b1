// Command devledger serves an in-memory ledger speaking the same HTTP
// contract as the real backend, for local runs and demos.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/jeovahfialho/banking-frontend/ledgerstub"
)

func init() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalln(err)
	}

	addr := flag.String("addr", getenv("DEVLEDGER_ADDR", ":3000"), "listen address")
	user := flag.String("user", getenv("DEVLEDGER_USER", "admin"), "login username")
	pass := flag.String("pass", getenv("DEVLEDGER_PASS", "admin"), "login password")
	ttl := flag.Duration("token-ttl", time.Hour, "lifetime of issued tokens")
	flag.Parse()

	secret := os.Getenv("DEVLEDGER_SECRET")
	if secret == "" {
		secret = uuid.NewString()
		slog.Warn("DEVLEDGER_SECRET not set, tokens will not survive a restart")
	}

	auth := ledgerstub.NewAuthority([]byte(secret), *ttl)
	if err := auth.AddUser(*user, *pass); err != nil {
		log.Fatalln(err)
	}
	srv := ledgerstub.NewServer(ledgerstub.NewLedger(), auth)

	slog.Info("ledger listening", "addr", *addr, "user", *user)
	server := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatalln(err)
	}
}
