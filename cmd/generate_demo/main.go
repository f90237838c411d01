// Command generate_demo creates a demo database with a sample library
// catalog and a couple of staff accounts.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"library-admin/internal/auth"
	"library-admin/internal/database"
	"library-admin/internal/database/users"
	"library-admin/internal/entities"
)

const defaultDemoDatabasePath = "./demo.db"

// demoBcryptCost keeps demo generation fast; real deployments configure
// the cost through AUTH_BCRYPT_COST.
const demoBcryptCost = 10

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	authors := createAuthors(db)
	categories := createCategories(db)
	createBooks(db, authors, categories)
	createUsers(db)

	log.Println("Demo database generated successfully!")
	log.Println("Sign in with admin / admin123")
}

func createAuthors(db *database.Database) map[string]entities.Author {
	seeds := []entities.Author{
		{Name: "Frank Herbert", Biography: "American science fiction writer, best known for the Dune saga."},
		{Name: "Ursula K. Le Guin", Biography: "American author of speculative fiction, including the Earthsea series."},
		{Name: "Mary Shelley", Biography: "English novelist who wrote Frankenstein at eighteen."},
		{Name: "Jorge Luis Borges", Biography: "Argentine short-story writer, essayist and poet."},
	}

	out := make(map[string]entities.Author)
	for _, seed := range seeds {
		author := seed
		if err := db.DB.Create(&author).Error; err != nil {
			log.Fatalf("Failed to create author %s: %v", seed.Name, err)
		}
		out[author.Name] = author
	}
	return out
}

func createCategories(db *database.Database) map[string]entities.Category {
	seeds := []entities.Category{
		{Name: "Science Fiction", Description: "Speculative futures, technology and space."},
		{Name: "Fantasy", Description: "Magic, myth and invented worlds."},
		{Name: "Classics", Description: "Enduring works of literature."},
	}

	out := make(map[string]entities.Category)
	for _, seed := range seeds {
		category := seed
		if err := db.DB.Create(&category).Error; err != nil {
			log.Fatalf("Failed to create category %s: %v", seed.Name, err)
		}
		out[category.Name] = category
	}
	return out
}

func createBooks(db *database.Database, authors map[string]entities.Author, categories map[string]entities.Category) {
	books := []entities.Book{
		{
			Title:       "Dune",
			Description: "Paul Atreides and the desert planet Arrakis.",
			Copies:      4,
			AuthorID:    authors["Frank Herbert"].ID,
			CategoryID:  categories["Science Fiction"].ID,
		},
		{
			Title:       "The Left Hand of Darkness",
			Description: "An envoy on the ice world of Gethen.",
			Copies:      2,
			AuthorID:    authors["Ursula K. Le Guin"].ID,
			CategoryID:  categories["Science Fiction"].ID,
		},
		{
			Title:       "A Wizard of Earthsea",
			Description: "Ged's apprenticeship and the shadow he looses on the world.",
			Copies:      3,
			AuthorID:    authors["Ursula K. Le Guin"].ID,
			CategoryID:  categories["Fantasy"].ID,
		},
		{
			Title:       "Frankenstein",
			Description: "Victor Frankenstein and his creature.",
			Copies:      1,
			AuthorID:    authors["Mary Shelley"].ID,
			CategoryID:  categories["Classics"].ID,
		},
		{
			Title:       "Ficciones",
			Description: "Labyrinths, libraries and forking paths.",
			Copies:      2,
			AuthorID:    authors["Jorge Luis Borges"].ID,
			CategoryID:  categories["Classics"].ID,
		},
	}

	for i := range books {
		if err := db.DB.Create(&books[i]).Error; err != nil {
			log.Fatalf("Failed to create book %s: %v", books[i].Title, err)
		}
		log.Printf("Saved: %s", books[i].Title)
	}
}

func createUsers(db *database.Database) {
	repo := users.NewRepository(db.DB)

	seeds := []struct {
		username string
		email    string
		password string
		address  string
		phone    string
	}{
		{"admin", "admin@example.com", "admin123", "1 Library Lane", "+1-555-0100"},
		{"librarian", "librarian@example.com", "books4all", "2 Reading Road", "+1-555-0101"},
	}

	for _, seed := range seeds {
		hash, err := auth.HashPassword(seed.password, demoBcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", seed.username, err)
		}

		user := &entities.User{
			Username:     seed.username,
			Email:        seed.email,
			PasswordHash: hash,
			IsActive:     true,
		}
		profile := &entities.UserProfile{
			Address:     seed.address,
			PhoneNumber: seed.phone,
		}

		if err := repo.Create(user, profile); err != nil {
			log.Fatalf("Failed to create user %s: %v", seed.username, err)
		}
		log.Printf("Created user: %s", seed.username)
	}
}
