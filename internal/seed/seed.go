package seed

import (
	"fmt"
	"log"

	"offerhub/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a coherent marketplace dataset.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded rows in dependency order.
func (s *Seeder) ClearAll() error {
	log.Println("Cleaning database...")
	tables := []any{
		&models.ActivityLog{},
		&models.UserAchievement{},
		&models.Achievement{},
		&models.FreelancerSkill{},
		&models.Skill{},
		&models.ServiceCategory{},
		&models.Category{},
		&models.Review{},
		&models.Transaction{},
		&models.Message{},
		&models.ConversationParticipant{},
		&models.Conversation{},
		&models.Service{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}
	return nil
}

var skillNames = []string{
	"Go", "Rust", "TypeScript", "React", "Solidity", "PostgreSQL",
	"UI Design", "Copywriting", "SEO", "Data Analysis",
}

var categoryNames = []string{
	"Development", "Design", "Writing", "Marketing", "Data",
}

var achievementCatalog = map[string]string{
	"First Gig":      "Completed a first service sale",
	"Top Rated":      "Maintained a 4.8+ average score over 10 reviews",
	"Fast Responder": "Replied to 95% of messages within an hour",
	"Veteran":        "Active on the platform for over a year",
}

// SeedMarketplace creates users (half of them freelancers), the skill and
// category catalogs, services with category links, a messaging mesh,
// transactions and reviews. Returns the created users.
func (s *Seeder) SeedMarketplace(numUsers, numServices int) ([]*models.User, error) {
	f := s.factory

	skills := make([]*models.Skill, 0, len(skillNames))
	for _, name := range skillNames {
		skill, err := f.CreateSkill(name)
		if err != nil {
			return nil, fmt.Errorf("seed skill %q: %w", name, err)
		}
		skills = append(skills, skill)
	}

	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category, err := f.CreateCategory(name)
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", name, err)
		}
		categories = append(categories, category)
	}

	achievements := make([]*models.Achievement, 0, len(achievementCatalog))
	for name, desc := range achievementCatalog {
		achievement, err := f.CreateAchievement(name, desc)
		if err != nil {
			return nil, fmt.Errorf("seed achievement %q: %w", name, err)
		}
		achievements = append(achievements, achievement)
	}

	users := make([]*models.User, 0, numUsers)
	var freelancers []*models.User
	for i := 0; i < numUsers; i++ {
		isFreelancer := i%2 == 0
		user, err := f.CreateUser(func(u *models.User) {
			u.IsFreelancer = isFreelancer
		})
		if err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
		if isFreelancer {
			freelancers = append(freelancers, user)
		}
	}
	if len(freelancers) == 0 {
		return users, nil
	}

	for _, freelancer := range freelancers {
		n := 1 + f.rand.Intn(3)
		for _, idx := range f.rand.Perm(len(skills))[:n] {
			if err := f.AttachSkill(freelancer, skills[idx]); err != nil {
				return nil, fmt.Errorf("seed freelancer skill: %w", err)
			}
		}
		if f.rand.Intn(3) == 0 {
			if err := f.Award(freelancer, achievements[f.rand.Intn(len(achievements))]); err != nil {
				return nil, fmt.Errorf("seed award: %w", err)
			}
		}
	}

	for i := 0; i < numServices; i++ {
		freelancer := freelancers[f.rand.Intn(len(freelancers))]
		svc, err := f.CreateService(freelancer)
		if err != nil {
			return nil, fmt.Errorf("seed service: %w", err)
		}
		if err := f.LinkCategory(svc, categories[f.rand.Intn(len(categories))]); err != nil {
			return nil, fmt.Errorf("seed service category: %w", err)
		}
	}

	// Messaging, payments and reviews between random client/freelancer pairs.
	for i := 0; i < numUsers; i++ {
		client := users[f.rand.Intn(len(users))]
		freelancer := freelancers[f.rand.Intn(len(freelancers))]
		if client.ID == freelancer.ID {
			continue
		}

		conv, err := f.CreateConversation(client, freelancer)
		if err != nil {
			return nil, fmt.Errorf("seed conversation: %w", err)
		}
		for m := 0; m < 2+f.rand.Intn(5); m++ {
			sender := client
			if m%2 == 1 {
				sender = freelancer
			}
			if _, err := f.CreateMessage(conv, sender); err != nil {
				return nil, fmt.Errorf("seed message: %w", err)
			}
		}

		if _, err := f.CreateTransaction(client, freelancer); err != nil {
			return nil, fmt.Errorf("seed transaction: %w", err)
		}
		if _, err := f.CreateReview(client, freelancer); err != nil {
			return nil, fmt.Errorf("seed review: %w", err)
		}
	}

	log.Printf("Seeded %d users (%d freelancers), %d services", len(users), len(freelancers), numServices)
	return users, nil
}
