// Command admin provides role management utilities for Criminal Diaries.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"criminaldiaries/internal/cache"
	"criminaldiaries/internal/config"
	"criminaldiaries/internal/database"
	"criminaldiaries/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <email>     - Promote user to admin")
		fmt.Println("  go run ./cmd/admin demote <email>      - Demote user from admin")
		fmt.Println("  go run ./cmd/admin list-admins         - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// A running server caches user rows; invalidate on role changes so the
	// new role takes effect without waiting out the TTL.
	cache.InitRedis(cfg.RedisURL)

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin promote <email>")
			os.Exit(1)
		}
		promote(db, os.Args[2])

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin demote <email>")
			os.Exit(1)
		}
		demote(db, os.Args[2])

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func findByEmail(db *gorm.DB, email string) *models.User {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with email %s not found\n", email)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}
	return &user
}

func promote(db *gorm.DB, email string) {
	user := findByEmail(db, email)

	if user.Role == models.RoleAdmin {
		fmt.Printf("User %s (ID: %d) is already an admin\n", user.Username, user.ID)
		return
	}

	user.Role = models.RoleAdmin
	if err := db.Save(user).Error; err != nil {
		log.Fatalf("Failed to promote user: %v", err)
	}
	cache.InvalidateUser(context.Background(), user.ID)

	fmt.Printf("Successfully promoted %s (ID: %d) to admin\n", user.Username, user.ID)
}

func demote(db *gorm.DB, email string) {
	user := findByEmail(db, email)

	if user.Role != models.RoleAdmin {
		fmt.Printf("User %s (ID: %d) is not an admin\n", user.Username, user.ID)
		return
	}

	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if adminCount <= 1 {
		fmt.Println("Refusing to demote the last admin account")
		os.Exit(1)
	}

	user.Role = models.RoleUser
	if err := db.Save(user).Error; err != nil {
		log.Fatalf("Failed to demote user: %v", err)
	}
	cache.InvalidateUser(context.Background(), user.ID)

	fmt.Printf("Successfully demoted %s (ID: %d) to regular user\n", user.Username, user.ID)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("role = ?", models.RoleAdmin).Order("id").Find(&admins).Error; err != nil {
		log.Fatalf("Database error: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admin accounts found")
		return
	}

	fmt.Printf("%-5s %-20s %-30s\n", "ID", "Username", "Email")
	for _, admin := range admins {
		fmt.Printf("%-5d %-20s %-30s\n", admin.ID, admin.Username, admin.Email)
	}
}
