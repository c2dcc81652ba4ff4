package database

import (
	"fmt"
	"log"

	"smartdalim_backend/internal/config"
	"smartdalim_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbc := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbc.User,
		dbc.Password,
		dbc.Host,
		dbc.Port,
		dbc.DBName,
		dbc.Charset,
		dbc.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Release deployments migrate only when asked to via -migrate.
	if cfg.Server.Mode == "release" && !cfg.ForceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.TeacherProfile{},
		&model.ParentProfile{},
		&model.Child{},
		&model.Client{},
		&model.Subject{},
		&model.Course{},
		&model.Material{},
		&model.LearningSession{},
		&model.Assessment{},
		&model.Question{},
		&model.Submission{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedSubjects(db)

	return db, nil
}

// seedSubjects inserts the default subject catalog on an empty database.
// The picker keeps its own exhaustion set so repeated seeding runs (tests,
// migrate-only boots) never depend on shared package state.
func seedSubjects(db *gorm.DB) {
	var count int64
	db.Model(&model.Subject{}).Count(&count)
	if count > 0 {
		return
	}

	picker := NewSubjectPicker(DefaultSubjects())
	for {
		s, ok := picker.Next()
		if !ok {
			break
		}
		db.Create(&s)
	}
}
