// Package main provides admin management utilities for SkillSwap.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/models"
	"skillswap/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <user_id>            - Promote user to admin")
		fmt.Println("  go run ./cmd/admin demote <user_id>             - Demote user from admin")
		fmt.Println("  go run ./cmd/admin create <email> <password>    - Create a new admin account")
		fmt.Println("  go run ./cmd/admin list-admins                  - List all admins")
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

	switch os.Args[1] {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin promote <user_id>")
			os.Exit(1)
		}
		setAdmin(db, os.Args[2], true)

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin demote <user_id>")
			os.Exit(1)
		}
		setAdmin(db, os.Args[2], false)

	case "create":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin create <email> <password>")
			os.Exit(1)
		}
		createAdmin(db, os.Args[2], os.Args[3])

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func setAdmin(db *gorm.DB, userID string, admin bool) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
			os.Exit(1)
		}
		log.Fatalf("Database error: %v", err)
	}

	if err := db.Model(&user).Update("is_admin", admin).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	verb := "promoted to"
	if !admin {
		verb = "demoted from"
	}
	fmt.Printf("User %s (%s) %s admin\n", user.Name, user.Email, verb)
}

func createAdmin(db *gorm.DB, email, password string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		log.Fatalf("Invalid email: %v", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		log.Fatalf("Invalid password: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		IsAdmin:  true,
		IsPublic: false,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	fmt.Printf("Admin account created: %s (ID %d)\n", user.Email, user.ID)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Fatalf("Failed to list admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admin accounts found")
		return
	}
	for _, admin := range admins {
		fmt.Printf("%d\t%s\t%s\n", admin.ID, admin.Name, admin.Email)
	}
}
