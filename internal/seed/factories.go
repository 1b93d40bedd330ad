// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultSeedPassword is the login password given to every generated user.
const DefaultSeedPassword = "Password1"

var skillNames = []string{
	"Guitar", "Piano", "Violin", "Singing", "Music Production",
	"Photography", "Video Editing", "Illustration", "Watercolor", "Pottery",
	"Cooking", "Baking", "Sourdough", "Barista Skills", "Wine Tasting",
	"Spanish", "French", "Japanese", "German", "Sign Language",
	"Yoga", "Pilates", "Running Coaching", "Swimming", "Chess",
	"Woodworking", "Knitting", "Sewing", "Gardening", "Beekeeping",
	"Public Speaking", "Creative Writing", "Calligraphy", "Web Design",
	"Excel", "Data Analysis", "Carpentry", "Bike Repair", "Car Maintenance",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand

	passwordHash string
}

// NewFactory creates a Factory bound to the provided Gorm DB. All generated
// users share DefaultSeedPassword so seeded accounts can be logged into.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultSeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	return &Factory{
		db:           db,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}, nil
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%s%d@example.com", gofakeit.Username(), gofakeit.Number(100, 999)),
		Password: f.passwordHash,
		Location: gofakeit.City(),
		Bio:      gofakeit.Sentence(12),
		IsPublic: true,
	}

	if f.rand.Intn(2) == 0 {
		user.AvailabilityDays = "Sat, Sun"
		user.AvailabilityStart = "10:00"
		user.AvailabilityEnd = "16:00"
	} else {
		user.AvailabilityDays = "Mon, Wed, Fri"
		user.AvailabilityStart = "18:00"
		user.AvailabilityEnd = "20:00"
	}

	// realistic registration spread over the past year
	daysBack := f.rand.Intn(365)
	user.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create seed user: %w", err)
	}
	return user, nil
}

// CreateSkill persists a skill listing for the given user.
func (f *Factory) CreateSkill(user *models.User, skillType models.SkillType, approved bool, overrides ...func(*models.Skill)) (*models.Skill, error) {
	skill := &models.Skill{
		UserID:      user.ID,
		Name:        skillNames[f.rand.Intn(len(skillNames))],
		Type:        skillType,
		Description: gofakeit.Sentence(15),
	}
	for _, override := range overrides {
		override(skill)
	}

	if err := f.db.Create(skill).Error; err != nil {
		return nil, fmt.Errorf("create seed skill: %w", err)
	}
	if approved {
		if err := f.db.Model(skill).Update("is_approved", true).Error; err != nil {
			return nil, fmt.Errorf("approve seed skill: %w", err)
		}
		skill.IsApproved = true
	}
	return skill, nil
}

// CreateSwap persists a swap request between two users' skills.
func (f *Factory) CreateSwap(requester, provider *models.User, offered, wanted *models.Skill, status models.SwapStatus) (*models.SwapRequest, error) {
	swap := &models.SwapRequest{
		RequesterID:    requester.ID,
		ProviderID:     provider.ID,
		OfferedSkillID: offered.ID,
		WantedSkillID:  wanted.ID,
		Status:         status,
		Message:        gofakeit.Sentence(10),
	}
	if err := f.db.Create(swap).Error; err != nil {
		return nil, fmt.Errorf("create seed swap: %w", err)
	}
	return swap, nil
}

// CreateRating persists feedback from raterID about the swap's other
// participant.
func (f *Factory) CreateRating(swap *models.SwapRequest, raterID uint) (*models.Rating, error) {
	rating := &models.Rating{
		SwapRequestID: swap.ID,
		RaterID:       raterID,
		RatedID:       swap.Counterparty(raterID),
		Rating:        f.rand.Intn(3) + 3, // skew positive, 3..5
		Feedback:      gofakeit.Sentence(8),
	}
	if err := f.db.Create(rating).Error; err != nil {
		return nil, fmt.Errorf("create seed rating: %w", err)
	}
	return rating, nil
}

// CreateConversation persists a thread between two users with alternating
// messages.
func (f *Factory) CreateConversation(a, b *models.User, messageCount int) (*models.Conversation, error) {
	u1, u2 := models.NormalizePair(a.ID, b.ID)
	conv := &models.Conversation{User1ID: u1, User2ID: u2, LastMessageAt: time.Now()}
	if err := f.db.Create(conv).Error; err != nil {
		return nil, fmt.Errorf("create seed conversation: %w", err)
	}

	for i := 0; i < messageCount; i++ {
		sender := a.ID
		if i%2 == 1 {
			sender = b.ID
		}
		msg := &models.ChatMessage{
			ConversationID: conv.ID,
			SenderID:       sender,
			Body:           gofakeit.Sentence(8),
			Type:           models.ChatMessageText,
		}
		if err := f.db.Create(msg).Error; err != nil {
			return nil, fmt.Errorf("create seed message: %w", err)
		}
	}
	return conv, nil
}

// CreateAnnouncement persists an admin announcement.
func (f *Factory) CreateAnnouncement(title, content string, active bool) (*models.Announcement, error) {
	announcement := &models.Announcement{
		Title:   title,
		Content: content,
	}
	if err := f.db.Create(announcement).Error; err != nil {
		return nil, fmt.Errorf("create seed announcement: %w", err)
	}
	if !active {
		if err := f.db.Model(announcement).Update("is_active", false).Error; err != nil {
			return nil, fmt.Errorf("deactivate seed announcement: %w", err)
		}
		announcement.IsActive = false
	} else {
		announcement.IsActive = true
	}
	return announcement, nil
}
