// Command admin-create interactively creates an admin account with chosen credentials.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"jobboard-backend/internal/config"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	value, _ := reader.ReadString('\n')
	return strings.TrimSpace(value)
}

func main() {
	fmt.Println("Generating admin account")

	reader := bufio.NewReader(os.Stdin)
	email := prompt(reader, "Enter email: ")
	username := prompt(reader, "Enter username (empty to use email): ")
	password1 := prompt(reader, "Enter password: ")
	password2 := prompt(reader, "Confirm password: ")

	if password1 != password2 {
		fmt.Println("Passwords do not match.")
		os.Exit(1)
	}

	cfg := config.MustLoad()
	db, err := database.NewDBInstance(cfg.DB)
	if err != nil {
		log.Fatalf("Database failed to connect: %v", err)
	}
	defer db.Close()

	users := service.NewUserService(db.DB, service.NewAuditLogger(db.DB), utilities.BcryptHasher{}, nil)
	admin, err := users.CreateAdmin(username, email, password1)
	if err != nil {
		fmt.Printf("Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin %s (%s) created.\n", admin.Username, admin.Email)
}
