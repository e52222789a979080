package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"threadai/internal/schema"
)

var (
	fakeStyles    = []string{"casual", "streetwear", "minimal", "vintage", "formal"}
	fakeFits      = []string{"loose", "regular", "tight"}
	fakeOccasions = []string{"brunch", "office", "wedding", "date night", "festival"}
	garmentTypes  = []string{"top", "bottom", "footwear", "accessory"}
)

// fakeSeedUsers generates n random users, each with a few posts and one draft.
// A non-zero seed makes the output reproducible.
func fakeSeedUsers(n int, seed int64) []SeedUser {
	faker := gofakeit.New(seed)

	users := make([]SeedUser, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", faker.Username(), faker.Number(100, 999))
		bio := faker.Sentence(10)
		image := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", faker.UUID())

		su := SeedUser{
			UserCreate: schema.UserCreate{
				Email:    fmt.Sprintf("%d.%s", i, faker.Email()),
				Name:     faker.Name(),
				Username: &username,
				Bio:      &bio,
				Image:    &image,
			},
		}

		for p := faker.Number(1, 3); p > 0; p-- {
			title := faker.Sentence(4)
			description := faker.Sentence(12)
			su.Posts = append(su.Posts, schema.PostCreate{
				ImageURL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", faker.UUID()),
				Title:         &title,
				Description:   &description,
				Tags:          []string{faker.RandomString(fakeStyles), faker.Color()},
				IsAIGenerated: faker.Bool(),
			})
		}

		title := faker.Sentence(3)
		garments := make([]schema.Garment, 0, 2)
		for g := 0; g < 2; g++ {
			name := faker.Noun()
			garments = append(garments, schema.Garment{
				ID:       faker.UUID(),
				Type:     faker.RandomString(garmentTypes),
				ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/400/400", faker.UUID()),
				Name:     &name,
			})
		}
		su.Drafts = []schema.DraftCreate{{
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", faker.UUID()),
			Title:    &title,
			Garments: garments,
			StyleParams: map[string]any{
				"style":    faker.RandomString(fakeStyles),
				"fit":      faker.RandomString(fakeFits),
				"occasion": faker.RandomString(fakeOccasions),
			},
		}}

		users = append(users, su)
	}
	return users
}
