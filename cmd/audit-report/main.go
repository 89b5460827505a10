package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/pkg/database"
)

// audit-report prints the revision history of one user or product:
// every snapshot joined to the revision that recorded it.
func main() {
	entity := flag.String("entity", "user", "entity type: user or product")
	id := flag.String("id", "", "entity identifier")
	flag.Parse()

	if *id == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	repo := repository.NewRevisionRepo(db)

	switch *entity {
	case "user":
		history, err := repo.UserHistory(*id)
		if err != nil {
			log.Fatalf("Failed to load user history: %v", err)
		}
		for _, entry := range history {
			printRevision(entry.Revision, entry.Snapshot.RevType, fmt.Sprintf("name=%q", entry.Snapshot.Name))
		}
		if len(history) == 0 {
			fmt.Printf("No revisions recorded for user %s\n", *id)
		}

	case "product":
		productID, err := strconv.ParseInt(*id, 10, 64)
		if err != nil {
			log.Fatalf("Invalid product id %q", *id)
		}
		history, err := repo.ProductHistory(productID)
		if err != nil {
			log.Fatalf("Failed to load product history: %v", err)
		}
		for _, entry := range history {
			printRevision(entry.Revision, entry.Snapshot.RevType,
				fmt.Sprintf("name=%q quantity=%d price=%.2f", entry.Snapshot.Name, entry.Snapshot.Quantity, entry.Snapshot.Price))
		}
		if len(history) == 0 {
			fmt.Printf("No revisions recorded for product %s\n", *id)
		}

	default:
		log.Fatalf("Unknown entity %q (want user or product)", *entity)
	}
}

func printRevision(rev model.Revision, revType int8, fields string) {
	fmt.Printf("rev=%d %s op=%s actor=%q ip=%q origin=%q %s\n",
		rev.ID,
		rev.UpdateDate.Format(time.RFC3339),
		revTypeName(revType),
		rev.User,
		rev.IP,
		rev.OriginAlt,
		fields)
}

func revTypeName(revType int8) string {
	switch revType {
	case model.RevTypeAdd:
		return "add"
	case model.RevTypeMod:
		return "mod"
	case model.RevTypeDel:
		return "del"
	}
	return "unknown"
}
