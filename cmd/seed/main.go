package main

import (
	"fmt"

	"snappoint/pkg/config"
	"snappoint/pkg/database"
	"snappoint/pkg/logger"
	"snappoint/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demoUser := &models.User{
		Email:    "demo@snappoint.dev",
		Username: "demo",
		Password: string(hashedPassword),
		Role:     models.RoleAuthor,
		IsActive: true,
	}

	var existing models.User
	err = db.Where("email = ?", demoUser.Email).First(&existing).Error
	if err == nil {
		log.Info("Demo user already exists, skipping")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := db.Create(demoUser).Error; err != nil {
		return err
	}
	log.Info("Created demo user %s", demoUser.Email)

	demoFile := &models.File{
		UploaderID:   demoUser.ID,
		URL:          "https://snappoint-media.s3.us-east-1.amazonaws.com/seed/demo.jpg",
		ThumbnailURL: "https://snappoint-media.s3.us-east-1.amazonaws.com/seed/demo_thumb.jpg",
		MimeType:     "image/jpeg",
	}
	if err := db.Create(demoFile).Error; err != nil {
		return err
	}
	log.Info("Created demo file %s", demoFile.ID)

	demoPost := &models.Post{
		AuthorID: demoUser.ID,
		Title:    "Welcome to Snappoint",
		Summary:  "A first look at composing posts from blocks.",
		Status:   models.StatusDraft,
	}
	if err := db.Create(demoPost).Error; err != nil {
		return err
	}

	lat, lon := 37.5665, 126.9780
	textBlock := &models.Block{
		PostID:  demoPost.ID,
		Type:    models.BlockTypeText,
		Content: "A first look at composing posts from blocks.",
		Order:   0,
	}
	mediaBlock := &models.Block{
		PostID:    demoPost.ID,
		Type:      models.BlockTypeMedia,
		Latitude:  &lat,
		Longitude: &lon,
		Order:     1,
	}
	if err := db.Create(textBlock).Error; err != nil {
		return err
	}
	if err := db.Create(mediaBlock).Error; err != nil {
		return err
	}

	blockFile := &models.BlockFile{
		BlockID: mediaBlock.ID,
		FileID:  demoFile.ID,
		Role:    models.FileRolePrimary,
	}
	if err := db.Create(blockFile).Error; err != nil {
		return err
	}
	log.Info("Created demo post %s with %d blocks", demoPost.ID, 2)

	return nil
}
