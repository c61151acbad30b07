package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"merchant-registry/internal/model"
	"merchant-registry/pkg/config"
	"merchant-registry/pkg/database"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var municipalities = []string{"Bogotá", "Medellín", "Cali", "Barranquilla", "Cartagena"}

// Seeds one user per role, five merchants and ten establishments randomly
// distributed among them.
func main() {
	conf, err := config.Load("merchant-registry")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := database.InitDB(&conf.DB)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.MigrateModels(&model.User{}, &model.Merchant{}, &model.Establishment{}); err != nil {
		fmt.Printf("Error migrating models: %v\n", err)
		os.Exit(1)
	}

	if err := seed(db); err != nil {
		fmt.Printf("Seed failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Seed completed successfully!")
}

func seed(db *gorm.DB) error {
	admin, err := createUser(db, "Admin User", "admin@example.com", "admin123", model.RoleAdministrator)
	if err != nil {
		return err
	}
	assistant, err := createUser(db, "Assistant User", "assistant@example.com", "assistant123", model.RoleRegistrationAssistant)
	if err != nil {
		return err
	}

	merchants := make([]model.Merchant, 0, 5)
	for i := 1; i <= 5; i++ {
		phone := fmt.Sprintf("+57%010d", rand.Intn(1000000000))
		email := fmt.Sprintf("merchant%d@example.com", i)
		status := model.StatusActive
		if rand.Float64() <= 0.2 {
			status = model.StatusInactive
		}

		m := model.Merchant{
			Name:             fmt.Sprintf("Merchant %d", i),
			Municipality:     municipalities[rand.Intn(len(municipalities))],
			Phone:            &phone,
			Email:            &email,
			RegistrationDate: time.Now().AddDate(0, 0, -rand.Intn(365)),
			Status:           status,
			RegisteredByID:   admin.ID,
			UpdatedByID:      admin.ID,
		}
		if err := db.Create(&m).Error; err != nil {
			return err
		}
		merchants = append(merchants, m)
	}

	for i := 1; i <= 10; i++ {
		owner := merchants[rand.Intn(len(merchants))]
		registeredBy := admin.ID
		if rand.Float64() > 0.5 {
			registeredBy = assistant.ID
		}
		updatedBy := admin.ID
		if rand.Float64() > 0.5 {
			updatedBy = assistant.ID
		}

		e := model.Establishment{
			Name:           fmt.Sprintf("Establishment %d", i),
			Revenue:        float64(rand.Intn(1000000) + 10000),
			EmployeeCount:  rand.Intn(50) + 1,
			OwnerID:        owner.ID,
			RegisteredByID: registeredBy,
			UpdatedByID:    updatedBy,
		}
		if err := db.Create(&e).Error; err != nil {
			return err
		}
	}

	return nil
}

func createUser(db *gorm.DB, name, email, password string, role model.Role) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
