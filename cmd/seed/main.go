// Command seed provisions the single admin user out-of-band. Login is fixed
// to the configured ADMIN_USER_ID, so this is the only supported way to
// create or reset the admin credentials.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/portfolio-cms/backend/internal/models"
	"github.com/portfolio-cms/backend/pkg/config"
	"github.com/portfolio-cms/backend/pkg/database"
	"github.com/portfolio-cms/backend/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	db, err := database.OpenPostgres(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password failed", zap.Error(err))
	}

	var u models.User
	err = db.First(&u, "id = ?", cfg.AdminUserID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = models.User{
			ID:       cfg.AdminUserID,
			Username: username,
			Password: string(hash),
			Name:     os.Getenv("ADMIN_NAME"),
			Email:    os.Getenv("ADMIN_EMAIL"),
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatal("create admin user failed", zap.Error(err))
		}
		fmt.Printf("admin user %q created with id %d\n", username, u.ID)
	case err != nil:
		log.Fatal("load admin user failed", zap.Error(err))
	default:
		u.Username = username
		u.Password = string(hash)
		if err := db.Save(&u).Error; err != nil {
			log.Fatal("update admin user failed", zap.Error(err))
		}
		fmt.Printf("admin user %q credentials refreshed\n", username)
	}
}
