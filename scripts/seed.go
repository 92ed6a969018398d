// Seed tool for local development and demos.
//
// Reads scripts/seed_data.yaml and creates a demo institution, batch and
// assessment definition. Safe to re-run: existing records are left alone.
//
// Usage: go run scripts/seed.go
package main

import (
	"errors"
	"log"
	"os"

	"careerpath_backend/internal/config"
	"careerpath_backend/internal/model"
	"careerpath_backend/internal/repository"
	"careerpath_backend/internal/service"
	"careerpath_backend/internal/util"
	"careerpath_backend/pkg/database"
	"careerpath_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type seedFile struct {
	Institution struct {
		Name  string `yaml:"name"`
		City  string `yaml:"city"`
		State string `yaml:"state"`
	} `yaml:"institution"`

	Batch struct {
		BatchID        string `yaml:"batchId"`
		Name           string `yaml:"name"`
		EducationLevel string `yaml:"educationLevel"`
		MaxStudents    int    `yaml:"maxStudents"`
		Slot           struct {
			Date      string `yaml:"date"`
			StartTime string `yaml:"startTime"`
			EndTime   string `yaml:"endTime"`
		} `yaml:"slot"`
	} `yaml:"batch"`

	Assessment struct {
		Categories      []string `yaml:"categories"`
		TimePerQuestion int      `yaml:"timePerQuestion"`
		Questions       []struct {
			Question      string   `yaml:"question"`
			Options       []string `yaml:"options"`
			CorrectAnswer string   `yaml:"correctAnswer"`
			Category      string   `yaml:"category"`
		} `yaml:"questions"`
	} `yaml:"assessment"`
}

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	data, err := os.ReadFile("scripts/seed_data.yaml")
	if err != nil {
		log.Fatalf("Failed to read seed data: %v", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("Failed to parse seed data: %v", err)
	}

	institutions := repository.NewInstitutionRepository(db)
	batches := repository.NewBatchRepository(db)
	assessments := repository.NewAssessmentRepository(db)

	inst := &model.Institution{
		Name:     seed.Institution.Name,
		City:     seed.Institution.City,
		State:    seed.Institution.State,
		IsActive: true,
	}
	if err := institutions.Create(inst); err != nil {
		log.Fatalf("Failed to create institution: %v", err)
	}
	log.Printf("Institution %q created (id=%d)", inst.Name, inst.ID)

	if _, err := batches.FindByBatchID(seed.Batch.BatchID); err == nil {
		log.Printf("Batch %q already exists, skipping", seed.Batch.BatchID)
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		batch := &model.Batch{
			BatchID:        seed.Batch.BatchID,
			Name:           seed.Batch.Name,
			EducationLevel: seed.Batch.EducationLevel,
			InstitutionID:  inst.ID,
			MaxStudents:    seed.Batch.MaxStudents,
			Slot: model.Slot{
				Date:      seed.Batch.Slot.Date,
				StartTime: seed.Batch.Slot.StartTime,
				EndTime:   seed.Batch.Slot.EndTime,
			},
			AllowAutoJoin: true,
			IsActive:      true,
		}
		if err := batches.Create(batch); err != nil {
			log.Fatalf("Failed to create batch: %v", err)
		}
		log.Printf("Batch %q created", batch.BatchID)
	} else {
		log.Fatalf("Failed to look up batch: %v", err)
	}

	svc := service.NewAssessmentService(assessments, batches, cfg)

	req := service.CreateAssessmentRequest{
		BatchID: seed.Batch.BatchID,
		Slot: model.Slot{
			Date:      seed.Batch.Slot.Date,
			StartTime: seed.Batch.Slot.StartTime,
			EndTime:   seed.Batch.Slot.EndTime,
		},
		Mode:            string(model.ModeManual),
		Categories:      seed.Assessment.Categories,
		TimePerQuestion: seed.Assessment.TimePerQuestion,
		Source:          "seed",
	}
	for _, q := range seed.Assessment.Questions {
		req.Questions = append(req.Questions, service.QuestionInput{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Category:      q.Category,
		})
	}

	if _, err := svc.Create(0, req); err != nil {
		if errors.Is(err, util.ErrAssessmentExists) {
			log.Printf("Assessment for batch %q already exists, skipping", seed.Batch.BatchID)
		} else {
			log.Fatalf("Failed to create assessment: %v", err)
		}
	} else {
		log.Printf("Assessment for batch %q created with %d questions", seed.Batch.BatchID, len(req.Questions))
	}

	log.Println("Seeding complete")
}
