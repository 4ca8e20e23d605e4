package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"social-service/internal/config"
	"social-service/internal/database"
	"social-service/internal/models"
	"social-service/internal/repository"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	mongoDB, err := database.NewMongoConnection(&cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	ctx := context.Background()
	defer mongoDB.Close(ctx)

	userRepo := repository.NewUserRepository(mongoDB.DB)
	postRepo := repository.NewPostRepository(mongoDB.DB)

	slog.Info("Creating initial users...")

	testUsers := []struct {
		firstName string
		lastName  string
		email     string
	}{
		{"Alice", "Nguyen", "alice@social.local"},
		{"Bob", "Tran", "bob@social.local"},
		{"Charlie", "Le", "charlie@social.local"},
	}

	var created []*models.User
	for _, data := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
		user := &models.User{
			FirstName: data.firstName,
			LastName:  data.lastName,
			Email:     data.email,
			Password:  string(hashedPassword),
			Verified:  true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			slog.Warn("User might already exist", "email", data.email, "error", err)
			continue
		}
		slog.Info("Created user", "email", data.email, "id", user.ID.Hex())
		created = append(created, user)
	}

	slog.Info("Creating sample posts...")

	samples := []string{
		"Hello from the seeder!",
		"Trying out the new feed.",
		"Anyone around for lunch?",
	}
	for i, text := range samples {
		if len(created) == 0 {
			break
		}
		author := created[i%len(created)]
		post := &models.Post{
			UserID:      author.ID,
			Description: text,
		}
		if err := postRepo.Create(ctx, post); err != nil {
			slog.Warn("Failed to create post", "error", err)
			continue
		}
		slog.Info("Created post", "id", post.ID.Hex(), "author", author.Email)
		time.Sleep(time.Millisecond) // keep insertion order distinct
	}

	slog.Info("Seeding complete")
}
