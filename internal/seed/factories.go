// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"offerhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// FakeWalletAddress returns a random EVM-shaped wallet address.
func FakeWalletAddress() string {
	h := strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
	return "0x" + h[:40]
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	user := &models.User{
		WalletAddress: FakeWalletAddress(),
		Username:      gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:         &email,
		IsFreelancer:  gofakeit.Bool(),
		IsActive:      true,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateService constructs and persists a sample `models.Service` offered by
// the given freelancer.
func (f *Factory) CreateService(freelancer *models.User, overrides ...func(*models.Service)) (*models.Service, error) {
	svc := &models.Service{
		FreelancerID:     freelancer.ID,
		Title:            gofakeit.JobTitle() + " services",
		Description:      gofakeit.Paragraph(1, 3, 5, "\n"),
		BasePrice:        float64(gofakeit.Number(25, 5000)),
		Currency:         "USD",
		DeliveryTimeDays: gofakeit.Number(1, 30),
		IsActive:         true,
	}

	for _, override := range overrides {
		override(svc)
	}

	if err := f.db.Create(svc).Error; err != nil {
		return nil, err
	}
	return svc, nil
}

// CreateSkill persists a skill catalog entry with the given name.
func (f *Factory) CreateSkill(name string) (*models.Skill, error) {
	skill := &models.Skill{Name: name}
	if err := f.db.Create(skill).Error; err != nil {
		return nil, err
	}
	return skill, nil
}

// CreateCategory persists a category with a slug derived from the name.
func (f *Factory) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{
		Name: name,
		Slug: strings.ToLower(strings.Join(strings.Fields(name), "-")),
	}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateAchievement persists an achievement catalog entry.
func (f *Factory) CreateAchievement(name, description string) (*models.Achievement, error) {
	achievement := &models.Achievement{
		Name:        name,
		Description: description,
		Icon:        fmt.Sprintf("https://picsum.photos/seed/%s/64/64", gofakeit.UUID()),
	}
	if err := f.db.Create(achievement).Error; err != nil {
		return nil, err
	}
	return achievement, nil
}

// AttachSkill links a skill to a freelancer with a random experience level.
func (f *Factory) AttachSkill(user *models.User, skill *models.Skill) error {
	levels := []models.ExperienceLevel{
		models.ExperienceBeginner, models.ExperienceIntermediate, models.ExperienceExpert,
	}
	fs := &models.FreelancerSkill{
		UserID:          user.ID,
		SkillID:         skill.ID,
		ExperienceLevel: levels[f.rand.Intn(len(levels))],
	}
	return f.db.Create(fs).Error
}

// LinkCategory links a service into a category.
func (f *Factory) LinkCategory(svc *models.Service, category *models.Category) error {
	link := &models.ServiceCategory{ServiceID: svc.ID, CategoryID: category.ID}
	return f.db.Create(link).Error
}

// Award grants an achievement to a user.
func (f *Factory) Award(user *models.User, achievement *models.Achievement) error {
	award := &models.UserAchievement{
		UserID:        user.ID,
		AchievementID: achievement.ID,
		EarnedAt:      time.Now().Add(-time.Duration(f.rand.Intn(90*24)) * time.Hour),
	}
	return f.db.Create(award).Error
}

// CreateConversation persists a conversation between the given participants.
func (f *Factory) CreateConversation(participants ...*models.User) (*models.Conversation, error) {
	conv := &models.Conversation{}
	if err := f.db.Create(conv).Error; err != nil {
		return nil, err
	}
	for _, u := range participants {
		p := &models.ConversationParticipant{ConversationID: conv.ID, UserID: u.ID}
		if err := f.db.Create(p).Error; err != nil {
			return nil, err
		}
	}
	return conv, nil
}

// CreateMessage constructs and persists a sample `models.Message` in the
// provided conversation from the provided sender.
func (f *Factory) CreateMessage(conversation *models.Conversation, sender *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       sender.ID,
		Content:        gofakeit.Sentence(10),
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreateTransaction persists a transaction between two users.
func (f *Factory) CreateTransaction(from, to *models.User, overrides ...func(*models.Transaction)) (*models.Transaction, error) {
	types := []models.TransactionType{
		models.TransactionTypePayment, models.TransactionTypeEscrowDeposit,
		models.TransactionTypeEscrowRelease, models.TransactionTypeRefund,
	}
	statuses := []models.TransactionStatus{
		models.TransactionStatusPending, models.TransactionStatusCompleted,
		models.TransactionStatusCompleted, models.TransactionStatusFailed,
	}

	tx := &models.Transaction{
		FromUserID:      from.ID,
		ToUserID:        to.ID,
		Amount:          float64(gofakeit.Number(10, 10000)),
		Currency:        "USD",
		TransactionHash: uuid.NewString(),
		Type:            types[f.rand.Intn(len(types))],
		Status:          statuses[f.rand.Intn(len(statuses))],
	}
	if tx.Status == models.TransactionStatusCompleted {
		now := time.Now()
		tx.CompletedAt = &now
	}

	for _, override := range overrides {
		override(tx)
	}

	if err := f.db.Create(tx).Error; err != nil {
		return nil, err
	}
	return tx, nil
}

// CreateReview persists a review from one user about another.
func (f *Factory) CreateReview(from, to *models.User, overrides ...func(*models.Review)) (*models.Review, error) {
	review := &models.Review{
		FromUserID: from.ID,
		ToUserID:   to.ID,
		Score:      gofakeit.Number(1, 5),
		Comment:    gofakeit.Sentence(12),
	}

	for _, override := range overrides {
		override(review)
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}
