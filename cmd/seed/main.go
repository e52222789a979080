package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"threadai/internal/cache"
	"threadai/internal/config"
	"threadai/internal/db"
	apperrors "threadai/internal/errors"
	"threadai/internal/repository"
	"threadai/internal/schema"
	"threadai/internal/service"
)

// SeedUser is one demo user with the content published under their name.
type SeedUser struct {
	schema.UserCreate
	Posts  []schema.PostCreate  `json:"posts"`
	Drafts []schema.DraftCreate `json:"drafts"`
}

func main() {
	source := flag.String("source", os.Getenv("SEED_SOURCE"), "URL or file path of a JSON list of seed users; built-in demo data when empty")
	fake := flag.Int("fake", 0, "number of extra random users to generate")
	fakeSeed := flag.Int64("fake-seed", 0, "seed for generated users; random when 0")
	flag.Parse()

	log.Println("Starting seed script...")
	cfg := config.Load()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := defaultSeedUsers()
	if *source != "" {
		log.Printf("Loading seed data from: %s", *source)
		if users, err = loadSeedUsers(*source); err != nil {
			log.Fatalf("Failed to load seed data: %v", err)
		}
	}

	if *fake > 0 {
		log.Printf("Generating %d random users", *fake)
		users = append(users, fakeSeedUsers(*fake, *fakeSeed)...)
	}

	userRepo := repository.NewUserRepository(gormDB)
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	userService := service.NewUserService(userRepo, cacheClient)
	postService := service.NewPostService(repository.NewPostRepository(gormDB), userRepo)
	draftService := service.NewDraftService(repository.NewDraftRepository(gormDB), userRepo)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, skipped := 0, 0
	for _, su := range users {
		user, err := userService.Create(ctx, su.UserCreate)
		if errors.Is(err, apperrors.ErrUserConflict) {
			log.Printf("User %s already exists, skipping", su.Email)
			skipped++
			continue
		}
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}
		for _, p := range su.Posts {
			if _, err := postService.Create(ctx, user.ID, p); err != nil {
				log.Fatalf("Failed to create post for %s: %v", su.Email, err)
			}
		}
		for _, d := range su.Drafts {
			if _, err := draftService.Create(ctx, user.ID, d); err != nil {
				log.Fatalf("Failed to create draft for %s: %v", su.Email, err)
			}
		}
		created++
	}

	log.Printf("Seeding completed: %d users created, %d skipped", created, skipped)
}

// loadSeedUsers reads seed data from an http(s) URL or a local file.
func loadSeedUsers(source string) ([]SeedUser, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch seed data: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("seed source returned status %d", resp.StatusCode)
		}
		if body, err = io.ReadAll(resp.Body); err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	} else {
		var err error
		if body, err = os.ReadFile(source); err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
	}

	var users []SeedUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return users, nil
}

func defaultSeedUsers() []SeedUser {
	str := func(s string) *string { return &s }
	return []SeedUser{
		{
			UserCreate: schema.UserCreate{
				Email:    "maya@example.com",
				Name:     "Maya Chen",
				Username: str("mayastyles"),
				Bio:      str("Thrift finds and layered neutrals."),
			},
			Posts: []schema.PostCreate{
				{
					ImageURL:    "https://images.example.com/posts/autumn-layers.jpg",
					Title:       str("Autumn layers"),
					Description: str("Camel coat over a chunky knit."),
					Tags:        []string{"autumn", "layering", "neutral"},
				},
				{
					ImageURL:      "https://images.example.com/posts/ai-streetwear.jpg",
					Title:         str("Streetwear remix"),
					Tags:          []string{"streetwear"},
					IsAIGenerated: true,
				},
			},
			Drafts: []schema.DraftCreate{
				{
					ImageURL: "https://images.example.com/drafts/weekend.jpg",
					Title:    str("Weekend brunch"),
					Garments: []schema.Garment{
						{ID: "denim-jacket", Type: "top", ImageURL: "https://images.example.com/garments/denim-jacket.jpg", Name: str("Denim jacket")},
						{ID: "white-sneakers", Type: "footwear", ImageURL: "https://images.example.com/garments/white-sneakers.jpg"},
					},
					StyleParams: map[string]any{"style": "casual", "fit": "regular", "occasion": "brunch"},
				},
			},
		},
		{
			UserCreate: schema.UserCreate{
				Email:    "leo@example.com",
				Name:     "Leo Alvarez",
				Username: str("leo.fits"),
			},
			Posts: []schema.PostCreate{
				{
					ImageURL: "https://images.example.com/posts/linen-suit.jpg",
					Title:    str("Linen suit for summer weddings"),
					Tags:     []string{"formal", "summer"},
				},
			},
		},
	}
}
