package database

import (
	"fmt"
	"log"

	"toeic_prep_backend/internal/config"
	"toeic_prep_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Release deploys migrate only when asked; everywhere else the schema
	// follows the models automatically.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		SeedSkillTags(db)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.SkillTag{},
		&model.Attempt{},
		&model.AttemptAnswer{},
		&model.UserSectionLevel{},
	)
}

// SeedSkillTags inserts the default tag dictionary when the table is empty.
func SeedSkillTags(db *gorm.DB) {
	var count int64
	db.Model(&model.SkillTag{}).Count(&count)
	if count > 0 {
		return
	}

	defaultTags := []model.SkillTag{
		{Code: "grammar", Label: "Grammar", Description: "Sentence structure and word forms", Order: 1, Enabled: true},
		{Code: "vocabulary", Label: "Vocabulary", Description: "Word meaning in context", Order: 2, Enabled: true},
		{Code: "inference", Label: "Inference", Description: "Implied meaning and conclusions", Order: 3, Enabled: true},
		{Code: "detail", Label: "Detail", Description: "Locating stated information", Order: 4, Enabled: true},
		{Code: "main-idea", Label: "Main idea", Description: "Purpose and gist of a passage", Order: 5, Enabled: true},
		{Code: "listening.short", Label: "Short conversations", Description: "Parts 1-2 listening", Order: 6, Enabled: true},
		{Code: "listening.long", Label: "Long conversations", Description: "Parts 3-4 listening", Order: 7, Enabled: true},
	}
	for _, t := range defaultTags {
		db.Create(&t)
	}
}
