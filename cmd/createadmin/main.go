// Command createadmin provisions an admin account. There is no public
// registration endpoint; accounts only ever enter the system through this
// tool or through the admin console.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/config"
	"github.com/avishek100/metmanichaudhary/internal/database"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
	"github.com/avishek100/metmanichaudhary/internal/services"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", string(models.RoleAdmin), "account role")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		log.Fatal("name, email and password are required")
	}
	if !models.ValidRole(models.Role(*role)) {
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := zap.NewNop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, client, err := database.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		log.Fatalf("mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	hash, err := services.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	users := repository.NewMongoUserRepo(db)
	u := &models.User{
		Name:         *name,
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
		Role:         models.Role(*role),
		IsActive:     true,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("create account: %v", err)
	}
	log.Printf("created %s account %s (%s)", u.Role, u.Email, u.ID.Hex())
}
