// Package seed populates the database with demo riders, tricks and likes.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"bmxhive/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets.
const DefaultPassword = "ride1234"

var trickTitles = []string{
	"Bunny Hop", "Barspin", "Tailwhip", "360 Spin", "Manual",
	"Wallride", "Footjam Tailwhip", "Superman Seat Grab", "Icepick Grind",
	"Feeble Grind", "Toothpick Stall", "Flair", "Truckdriver", "Crankflip",
}

var hashtagPool = []string{
	"bmx", "street", "park", "dirt", "flatland", "grind", "air", "rail",
}

// Seeder builds demo data keeping the like-count and point invariants
// intact: every trick's counter matches its Like rows and every rider's
// points equal the likes their tricks received.
type Seeder struct {
	db       *gorm.DB
	passHash string
}

// NewSeeder creates a Seeder. The shared password is hashed once.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, passHash: string(hash)}, nil
}

// ClearAll removes every domain row. Order respects FK dependencies.
func (s *Seeder) ClearAll() error {
	tables := []string{"likes", "tickets", "admin_content", "tricks", "profiles", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// SeedRiders creates numRiders accounts with profiles, tricksPerRider
// posts each and a random spread of likes between them.
func (s *Seeder) SeedRiders(numRiders, tricksPerRider int) error {
	riders := make([]*models.User, 0, numRiders)
	for i := 0; i < numRiders; i++ {
		rider, err := s.createRider(i)
		if err != nil {
			return err
		}
		riders = append(riders, rider)
	}

	var tricks []*models.Trick
	for _, rider := range riders {
		for j := 0; j < tricksPerRider; j++ {
			trick, err := s.createTrick(rider.ID)
			if err != nil {
				return err
			}
			tricks = append(tricks, trick)
		}
	}

	if err := s.spreadLikes(riders, tricks); err != nil {
		return err
	}

	log.Printf("seeded %d riders and %d tricks", len(riders), len(tricks))
	return nil
}

func (s *Seeder) createRider(n int) (*models.User, error) {
	name := gofakeit.Name()
	user := &models.User{
		Email:    fmt.Sprintf("rider%d@%s", n, gofakeit.DomainName()),
		Password: s.passHash,
		Role:     models.RoleUser,
		Name:     name,
		Bio:      gofakeit.Sentence(8),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("creating rider: %w", err)
	}

	profile := &models.Profile{
		UserID:         user.ID,
		Name:           name,
		Bio:            user.Bio,
		FavoriteTricks: trickTitles[rand.Intn(len(trickTitles))],
		TrickVideos:    []string{},
	}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return user, nil
}

func (s *Seeder) createTrick(riderID uint) (*models.Trick, error) {
	level := models.TrickLevelBeginner
	if rand.Intn(2) == 1 {
		level = models.TrickLevelAdvanced
	}

	tags := make([]string, 0, 2)
	for len(tags) < 2 {
		tag := hashtagPool[rand.Intn(len(hashtagPool))]
		if len(tags) == 0 || tags[0] != tag {
			tags = append(tags, tag)
		}
	}

	trick := &models.Trick{
		UserID:      riderID,
		Title:       trickTitles[rand.Intn(len(trickTitles))],
		Description: gofakeit.Paragraph(1, 3, 8, " "),
		Level:       level,
		Hashtags:    tags,
	}
	if err := s.db.Create(trick).Error; err != nil {
		return nil, fmt.Errorf("creating trick: %w", err)
	}
	return trick, nil
}

// spreadLikes hands out likes from random riders to random tricks they do
// not own, then settles counters and points from the actual Like rows.
func (s *Seeder) spreadLikes(riders []*models.User, tricks []*models.Trick) error {
	if len(riders) < 2 || len(tricks) == 0 {
		return nil
	}

	attempts := len(tricks) * 3
	for i := 0; i < attempts; i++ {
		trick := tricks[rand.Intn(len(tricks))]
		rider := riders[rand.Intn(len(riders))]
		if rider.ID == trick.UserID {
			continue
		}
		like := models.Like{TrickID: trick.ID, UserID: rider.ID}
		// Duplicate pairs hit the unique index; skip them.
		if err := s.db.Create(&like).Error; err != nil {
			continue
		}
	}

	if err := s.db.Exec(`
		UPDATE tricks SET like_count = (
			SELECT COUNT(*) FROM likes WHERE likes.trick_id = tricks.id
		)`).Error; err != nil {
		return fmt.Errorf("settling like counts: %w", err)
	}
	if err := s.db.Exec(`
		UPDATE profiles SET points = (
			SELECT COUNT(*) FROM likes
			JOIN tricks ON tricks.id = likes.trick_id
			WHERE tricks.user_id = profiles.user_id
		)`).Error; err != nil {
		return fmt.Errorf("settling profile points: %w", err)
	}
	if err := s.db.Exec(`
		UPDATE users SET points = (
			SELECT COALESCE(profiles.points, 0) FROM profiles
			WHERE profiles.user_id = users.id
		)`).Error; err != nil {
		return fmt.Errorf("settling user points: %w", err)
	}
	return nil
}
