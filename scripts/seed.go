package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"kwa/config"
	"kwa/database"
	"kwa/models"
	courseModels "kwa/models/course"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	log.Println("Seeding demo data...")

	// Admin account that owns the demo courses
	hashed, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Name:            "Academy Admin",
		Email:           "admin@kingdomwayacademy.com",
		Role:            models.RoleAdmin,
		Password:        string(hashed),
		IsEmailVerified: true,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	var existing int64
	db.Model(&courseModels.Course{}).Count(&existing)
	if existing > 0 {
		log.Printf("Courses already present (%d), skipping course seed", existing)
		return
	}

	price1 := 49.99
	course1 := courseModels.Course{
		UserID:      admin.ID,
		Title:       "Kingdom Identity Foundations",
		Description: "Discover who you are in Christ and walk in your God-given identity. This transformational course will help you understand your position, authority, and purpose in the Kingdom of God.",
		ImageURL:    "https://images.unsplash.com/photo-1507692049790-de58290a4334",
		Price:       &price1,
		IsPublished: true,
	}
	if err := db.Create(&course1).Error; err != nil {
		log.Fatalf("Failed to create course: %v", err)
	}

	chapter1 := courseModels.Chapter{
		CourseID:    course1.ID,
		Title:       "Understanding Your Identity in Christ",
		Description: "Learn the foundational truths about who God says you are.",
		Position:    1,
		IsPublished: true,
		IsFree:      true, // first chapter is the free preview
	}
	if err := db.Create(&chapter1).Error; err != nil {
		log.Fatalf("Failed to create chapter: %v", err)
	}

	lessons := []courseModels.Lesson{
		{
			ChapterID:   chapter1.ID,
			Title:       "Who God Says You Are",
			Description: "Explore the biblical foundations of your identity as a child of God.",
			VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Position:    1,
			IsPublished: true,
			IsFree:      true,
		},
		{
			ChapterID:   chapter1.ID,
			Title:       "Breaking Free from False Identities",
			Description: "Identify and renounce false identities that have held you back.",
			VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Position:    2,
			IsPublished: true,
		},
		{
			ChapterID:   chapter1.ID,
			Title:       "Walking in Your New Identity",
			Description: "Practical steps to live out your Kingdom identity daily.",
			VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Position:    3,
			IsPublished: true,
		},
	}
	for i := range lessons {
		if err := db.Create(&lessons[i]).Error; err != nil {
			log.Fatalf("Failed to create lesson: %v", err)
		}
	}

	lab := courseModels.Lab{
		LessonID:     lessons[0].ID,
		Title:        "Identity Declaration Exercise",
		Description:  "Write out your personal identity statements based on Scripture.",
		Instructions: "Read through the listed scriptures about your identity in Christ, write a personal declaration statement for each one, record yourself speaking these declarations, and share one breakthrough you had during this exercise. Submit at least 5 identity declarations below.",
		NeedsText:    true,
		NeedsVideo:   true,
		IsGraded:     true,
		MaxPoints:    100,
		Position:     1,
	}
	if err := db.Create(&lab).Error; err != nil {
		log.Fatalf("Failed to create lab: %v", err)
	}

	course2 := courseModels.Course{
		UserID:      admin.ID,
		Title:       "Hearing God's Voice",
		Description: "Learn to recognize and respond to the voice of God in your daily life. A free introductory course open to every learner.",
		ImageURL:    "https://images.unsplash.com/photo-1504052434569-70ad5836ab65",
		IsPublished: true,
	}
	if err := db.Create(&course2).Error; err != nil {
		log.Fatalf("Failed to create course: %v", err)
	}

	chapter2 := courseModels.Chapter{
		CourseID:    course2.ID,
		Title:       "Foundations of Hearing God",
		Description: "Why God still speaks and how to position yourself to listen.",
		Position:    1,
		IsPublished: true,
	}
	if err := db.Create(&chapter2).Error; err != nil {
		log.Fatalf("Failed to create chapter: %v", err)
	}

	lesson2 := courseModels.Lesson{
		ChapterID:   chapter2.ID,
		Title:       "God Still Speaks Today",
		Description: "An introduction to the many ways God communicates with His people.",
		VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Position:    1,
		IsPublished: true,
	}
	if err := db.Create(&lesson2).Error; err != nil {
		log.Fatalf("Failed to create lesson: %v", err)
	}

	log.Println("Seed complete!")
	log.Printf("Admin login: %s", admin.Email)
}
