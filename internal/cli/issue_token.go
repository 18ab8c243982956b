package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/cyclecare/internal/db"
	"github.com/terraincognita07/cyclecare/internal/security"
	"github.com/terraincognita07/cyclecare/internal/services"
	"go.uber.org/zap"
)

// RunIssueTokenCommand prints a bearer token for this device's community
// identity, creating the identity on first use.
func RunIssueTokenCommand(dbPath string, secretKey string, ttl time.Duration, out io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	tokenKey, err := security.DeriveTokenKey(secretKey)
	if err != nil {
		return fmt.Errorf("token key init failed: %w", err)
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	repositories := db.NewRepositories(database)
	community := services.NewCommunityService(repositories.KeyValues, logger.Named("community"), time.Now)

	userID, err := community.EnsureUserID(context.Background())
	if err != nil {
		return fmt.Errorf("resolve device identity: %w", err)
	}

	token, err := security.IssueDeviceToken(tokenKey, userID, time.Now(), ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Fprintf(out, "Device identity: %s (%s)\n", userID, services.AnonymousName(userID))
	fmt.Fprintf(out, "Token: %s\n", token)
	return nil
}
