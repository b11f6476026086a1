// Command-line tool to clean the database by dropping all tables in the public schema.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"jobboard-backend/internal/config"
	"jobboard-backend/internal/database"
)

func main() {
	fmt.Println("⚠️ WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	input = strings.TrimSpace(strings.ToLower(input))

	if input != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	cfg := config.MustLoad()
	db, err := database.NewDBInstance(cfg.DB)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer db.Close()

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		log.Fatalf("failed to list tables: %v", err)
	}

	for _, table := range tables {
		if err := db.Exec("DROP TABLE IF EXISTS " + pq.QuoteIdentifier(table) + " CASCADE").Error; err != nil {
			log.Fatalf("failed to drop %s: %v", table, err)
		}
		fmt.Printf("dropped %s\n", table)
	}

	fmt.Printf("✅ %d table(s) dropped successfully.\n", len(tables))
}
