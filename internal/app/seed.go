package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

// SeedDefaultAdmin creates the bootstrap admin account when no user
// with its id exists yet. Intended for dev/staging; gate it behind
// SEED_DEFAULT_ADMIN in production.
func SeedDefaultAdmin(ctx context.Context, userRepo repositories.UserRepository) error {
	defaultAdminID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	existing, err := userRepo.GetByID(ctx, defaultAdminID)
	if err != nil {
		return fmt.Errorf("error checking for existing admin: %w", err)
	}
	if existing != nil {
		utils.Logger.Infof("Default admin already exists (ID=%s); skipping seed.", existing.ID)
		return nil
	}

	hashedPass, err := bcrypt.GenerateFromPassword([]byte("P@ssword123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to bcrypt-hash default admin password: %w", err)
	}

	admin := &models.User{
		ID:           defaultAdminID,
		Name:         "Seed Admin",
		Email:        "admin@billtracker.local",
		PasswordHash: string(hashedPass),
		Role:         models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to insert default admin: %w", err)
	}

	utils.Logger.Infof("Seeded default admin %s", admin.Email)
	return nil
}
