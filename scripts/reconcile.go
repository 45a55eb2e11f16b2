package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Audits the loyalty ledger: every user's points_balance must equal the sum of
// their point_transactions amounts. Exits non-zero when any account drifts.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Build connection string
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	// Connect to database
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	rows, err := db.Query(`
		SELECT u.id, u.email, u.points_balance, COALESCE(SUM(pt.amount), 0) AS ledger_sum
		FROM users u
		LEFT JOIN point_transactions pt ON pt.user_id = u.id
		GROUP BY u.id, u.email, u.points_balance
		HAVING u.points_balance <> COALESCE(SUM(pt.amount), 0)
		ORDER BY u.id
	`)
	if err != nil {
		log.Fatalf("Failed to run reconciliation query: %v", err)
	}
	defer rows.Close()

	drifted := 0
	for rows.Next() {
		var (
			id        int64
			email     string
			balance   int64
			ledgerSum int64
		)
		if err := rows.Scan(&id, &email, &balance, &ledgerSum); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		drifted++
		log.Printf("DRIFT user=%d email=%s balance=%d ledger=%d diff=%d",
			id, email, balance, ledgerSum, balance-ledgerSum)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to read reconciliation rows: %v", err)
	}

	if drifted > 0 {
		log.Fatalf("Reconciliation failed: %d account(s) out of sync", drifted)
	}

	log.Println("Reconciliation passed: all balances match the ledger")
}
