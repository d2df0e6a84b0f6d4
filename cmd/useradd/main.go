package main

import (
	"flag"
	"log"

	"github.com/quilldocs/quill/internal/config"
	"github.com/quilldocs/quill/internal/users"
)

// useradd seeds an account into the credentials file without going through
// the web signup flow. Handy for bootstrapping a fresh deployment.
func main() {
	username := flag.String("username", "", "account name to create")
	password := flag.String("password", "", "account password")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	svc := users.NewService(users.NewFileStore(cfg.Storage.CredentialsFile))
	if err := svc.SignUp(*username, *password); err != nil {
		log.Fatalf("create %s: %v", *username, err)
	}
	log.Printf("created account %s in %s", *username, cfg.Storage.CredentialsFile)
}
