// Command issue-token mints an access token for a user id. It is used to
// bootstrap clients and for local testing; production tokens come from the
// identity provider sharing auth.jwt_secret.
//
// Usage:
//
//	issue-token [--user=<uuid>]
//
// A random user id is generated when --user is omitted. The token is
// printed to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedsense-backend/internal/auth"
	"github.com/heartmarshall/feedsense-backend/internal/config"
)

func main() {
	user := flag.String("user", "", "user id to embed in the token (default: random)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: issue-token [--user=<uuid>]")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		fmt.Fprint(os.Stderr, config.Describe())
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	userID := uuid.New()
	if *user != "" {
		if userID, err = uuid.Parse(*user); err != nil {
			fmt.Fprintf(os.Stderr, "invalid --user: %v\n", err)
			flag.Usage()
			os.Exit(2)
		}
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := tokens.Issue(userID)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "user %s, valid for %s\n", userID, cfg.Auth.AccessTokenTTL)
	fmt.Println(token)
}
