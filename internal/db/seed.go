package db

import (
	"errors" // Error inspection
	"fmt"    // Error wrapping
	"time"   // Timestamps

	"tabungan/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Seed credentials
const (
	AdminUsername  = "admin"
	AdminPassword  = "admin123"
	MemberUsername = "fauzi"
	MemberPassword = "fauzi123"
)

// Seed ensures the default admin exists and, when demo is set and no students exist,
// creates a demo student with an opening deposit and a member login.
func Seed(db *gorm.DB, demo bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var admin domain.User
		err := tx.Where("username = ?", AdminUsername).First(&admin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin = domain.User{Username: AdminUsername, PasswordHash: string(hash), Role: domain.RoleAdmin}
			if err := tx.Omit("Student").Create(&admin).Error; err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			logrus.WithField("username", AdminUsername).Info("Seeded admin user")
		} else if err != nil {
			return err
		}
		if !demo {
			return nil
		}

		var count int64
		if err := tx.Model(&domain.Student{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		student := domain.Student{Name: "Ahmad Fauzi", Class: "9A", Phone: "0812xxxxxxx"}
		if err := tx.Create(&student).Error; err != nil {
			return fmt.Errorf("seed student: %w", err)
		}
		opening := domain.Transaction{
			StudentID: student.ID,
			Amount:    50000,
			Type:      domain.TypeDeposit,
			Note:      "Setoran awal",
			AdminID:   &admin.ID,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Omit("Student", "Admin").Create(&opening).Error; err != nil {
			return fmt.Errorf("seed deposit: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(MemberPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		member := domain.User{Username: MemberUsername, PasswordHash: string(hash), Role: domain.RoleMember, StudentID: &student.ID}
		if err := tx.Omit("Student").Create(&member).Error; err != nil {
			return fmt.Errorf("seed member: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"student_id": student.ID,     // Demo student
			"username":   MemberUsername, // Demo login
		}).Info("Seeded demo student")
		return nil
	})
}
