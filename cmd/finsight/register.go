package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/finsight/internal/app"
	"github.com/ternarybob/finsight/internal/models"
	badgerstorage "github.com/ternarybob/finsight/internal/storage/badger"
)

// runRegister creates a user record and captures the short financial
// profile survey that personalizes chat replies.
func runRegister(application *app.App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: finsight register <username>")
	}
	username := strings.TrimSpace(args[0])
	if username == "" {
		return fmt.Errorf("username is empty")
	}

	ctx := context.Background()

	existing, err := application.UserStorage.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("username %q already exists", username)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	password = strings.TrimSpace(password)
	if password == "" {
		return fmt.Errorf("password is empty")
	}

	hash, err := badgerstorage.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := application.UserStorage.Create(ctx, user); err != nil {
		return err
	}

	fmt.Println("Describe your financial situation and goals (age, income, savings, objectives).")
	fmt.Print("Profile: ")
	survey, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	survey = strings.TrimSpace(survey)
	if survey != "" {
		if err := application.UserStorage.SaveSurvey(ctx, username, survey); err != nil {
			return err
		}
	}

	fmt.Printf("User %q registered.\n", username)
	return nil
}
