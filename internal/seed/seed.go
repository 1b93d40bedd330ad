package seed

import (
	"errors"
	"fmt"
	"log"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// Options configures the demo seeder.
type Options struct {
	NumUsers    int
	ShouldClean bool
}

// Run populates the database with a connected demo dataset: users with
// moderated skills, swap requests across the lifecycle, ratings on
// completed swaps, a few chat threads, and announcements.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	offered := make([]*models.Skill, 0, opts.NumUsers)

	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)

		skill, err := factory.CreateSkill(user, models.SkillTypeOffered, true)
		if err != nil {
			return err
		}
		offered = append(offered, skill)

		// some users also list a wanted skill and a pending submission
		if i%2 == 0 {
			if _, err := factory.CreateSkill(user, models.SkillTypeWanted, true); err != nil {
				return err
			}
		}
		if i%5 == 0 {
			if _, err := factory.CreateSkill(user, models.SkillTypeOffered, false); err != nil {
				return err
			}
		}
	}

	statuses := []models.SwapStatus{
		models.SwapStatusPending,
		models.SwapStatusAccepted,
		models.SwapStatusRejected,
		models.SwapStatusCancelled,
		models.SwapStatusCompleted,
	}

	for i := 0; i+1 < len(users); i += 2 {
		requester, provider := users[i], users[i+1]
		status := statuses[i/2%len(statuses)]

		swap, err := factory.CreateSwap(requester, provider, offered[i], offered[i+1], status)
		if err != nil {
			return err
		}

		if status == models.SwapStatusCompleted {
			if _, err := factory.CreateRating(swap, requester.ID); err != nil {
				return err
			}
			if _, err := factory.CreateRating(swap, provider.ID); err != nil {
				return err
			}
			if _, err := factory.CreateConversation(requester, provider, 4); err != nil {
				return err
			}
		}
	}

	if _, err := factory.CreateAnnouncement(
		"Community guidelines refresh",
		"We have updated the guidelines for skill listings. Please keep descriptions specific.",
		true,
	); err != nil {
		return err
	}

	log.Printf("seeded %d users (password %q)", len(users), DefaultSeedPassword)
	return nil
}

// Announcements creates the built-in welcome announcement if it is missing.
// It is safe to run on every startup.
func Announcements(db *gorm.DB) error {
	const title = "Welcome to SkillSwap"

	var existing models.Announcement
	err := db.Where("title = ?", title).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check built-in announcement: %w", err)
	}

	announcement := models.Announcement{
		Title:   title,
		Content: "List a skill you can teach, find one you want to learn, and propose a swap.",
	}
	if err := db.Create(&announcement).Error; err != nil {
		return fmt.Errorf("create built-in announcement: %w", err)
	}
	return nil
}

// Clean removes all seeded domain rows. Table order respects foreign keys.
func Clean(db *gorm.DB) error {
	tables := []string{
		"chat_messages",
		"chat_conversations",
		"ratings",
		"notifications",
		"swap_requests",
		"skills",
		"announcements",
		"users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}
	return nil
}
