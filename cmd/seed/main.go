package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eldenbuilds/internal/config"
	"eldenbuilds/internal/db"
	"eldenbuilds/internal/model"
	"eldenbuilds/internal/repository"
)

const seedUserEmail = "showcase@eldenbuilds.local"

// SeedBuildData represents one build from the curated seed document.
type SeedBuildData struct {
	Name          string   `json:"name"`
	StartingClass string   `json:"starting_class"`
	Weapon        string   `json:"weapon"`
	LocationName  string   `json:"location_name"`
	LocationURL   string   `json:"location_url"`
	ImageURL      string   `json:"image_url"`
	VideoURL      string   `json:"video_url"`
	Description   string   `json:"description"`
	Vigor         int      `json:"vigor"`
	Mind          int      `json:"mind"`
	Endurance     int      `json:"endurance"`
	Strength      int      `json:"strength"`
	Dexterity     int      `json:"dexterity"`
	Intelligence  int      `json:"intelligence"`
	Faith         int      `json:"faith"`
	Arcane        int      `json:"arcane"`
	Difficulty    string   `json:"difficulty"`
	ShowcaseItems []string `json:"showcase_items"`
}

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()

	seedURL := os.Getenv("BUILDS_SEED_URL")
	if seedURL == "" {
		log.Fatal("BUILDS_SEED_URL not set")
	}

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Build{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Fetch builds from the curated document
	log.Printf("Fetching builds from: %s", seedURL)
	seedData, err := fetchBuildsFromURL(seedURL)
	if err != nil {
		log.Fatalf("Failed to fetch builds: %v", err)
	}
	log.Printf("Fetched %d builds", len(seedData))

	userRepo := repository.NewUserRepository(gormDB)
	buildRepo := repository.NewBuildRepository(gormDB)
	ctx := context.Background()

	// All seeded builds are attributed to a dedicated showcase user
	owner, err := ensureSeedUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to ensure seed user: %v", err)
	}

	log.Println("Seeding builds into database...")
	seeded, updated, err := seedBuilds(ctx, buildRepo, owner.ID, seedData)
	if err != nil {
		log.Fatalf("Failed to seed builds: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New builds created: %d", seeded)
	log.Printf("  - Existing builds updated: %d", updated)
	log.Printf("  - Total builds processed: %d", seeded+updated)
}

// fetchBuildsFromURL fetches curated build data from the given URL.
func fetchBuildsFromURL(url string) ([]SeedBuildData, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed document returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var builds []SeedBuildData
	if err := json.Unmarshal(body, &builds); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return builds, nil
}

// ensureSeedUser finds or creates the showcase user that owns seeded
// builds. The account gets a random password, so it cannot be logged
// into.
func ensureSeedUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, seedUserEmail)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("find seed user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	user := &model.User{
		Username:     "showcase",
		Email:        seedUserEmail,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create seed user: %w", err)
	}
	return user, nil
}

// seedBuilds upserts builds by name, attributing new rows to ownerID.
func seedBuilds(ctx context.Context, repo repository.BuildRepository, ownerID uint, seedData []SeedBuildData) (seeded int, updated int, err error) {
	for _, item := range seedData {
		build := model.Build{
			Name:          item.Name,
			StartingClass: item.StartingClass,
			Weapon:        item.Weapon,
			LocationName:  item.LocationName,
			LocationURL:   item.LocationURL,
			ImageURL:      item.ImageURL,
			VideoURL:      item.VideoURL,
			Description:   item.Description,
			Vigor:         item.Vigor,
			Mind:          item.Mind,
			Endurance:     item.Endurance,
			Strength:      item.Strength,
			Dexterity:     item.Dexterity,
			Intelligence:  item.Intelligence,
			Faith:         item.Faith,
			Arcane:        item.Arcane,
			Difficulty:    item.Difficulty,
			ShowcaseItems: item.ShowcaseItems,
			UserID:        ownerID,
		}

		existing, err := repo.FindByName(ctx, item.Name)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, updated, fmt.Errorf("error checking build %q: %w", item.Name, err)
		}

		if existing != nil {
			build.ID = existing.ID
			build.UserID = existing.UserID
			build.CreatedAt = existing.CreatedAt
			if err := repo.Save(ctx, &build); err != nil {
				return seeded, updated, fmt.Errorf("error updating build %q: %w", item.Name, err)
			}
			updated++
		} else {
			if err := repo.Create(ctx, &build); err != nil {
				return seeded, updated, fmt.Errorf("error creating build %q: %w", item.Name, err)
			}
			seeded++
		}
	}

	return seeded, updated, nil
}
