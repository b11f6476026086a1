// Command create-admin generates an admin account with random credentials.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobboard-backend/internal/config"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// generateRandomString creates a random hex string of length 2n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

// generateUniqueUsername tries until a unique username is found
func generateUniqueUsername(db *gorm.DB) string {
	for {
		username := "admin_" + generateRandomString(4)
		var count int64
		db.Model(&model.User{}).Where("username = ?", username).Count(&count)
		if count == 0 {
			return username
		}
	}
}

func main() {
	cfg := config.MustLoad()

	db, err := database.NewDBInstance(cfg.DB)
	if err != nil {
		log.Fatalf("Database failed to connect: %v", err)
	}
	defer db.Close()

	users := service.NewUserService(db.DB, service.NewAuditLogger(db.DB), utilities.BcryptHasher{}, nil)

	username := generateUniqueUsername(db.DB)
	email := username + "@admin.local"
	password := generateRandomString(8)

	admin, err := users.CreateAdmin(username, email, password)
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	// only place the plain password is ever shown
	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Username: %s\n", admin.Username)
	fmt.Printf("Email:    %s\n", admin.Email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")
}
