// Command seed creates a development account with default categories and
// prints a signed token for it.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"wealthcheck/internal/config"
	"wealthcheck/internal/models"
	"wealthcheck/internal/repositories"
	"wealthcheck/internal/utils"
	"wealthcheck/internal/validation"
)

var defaultCategories = []models.Category{
	{Name: "Salary", Type: models.TransactionTypeIncome, Icon: "briefcase"},
	{Name: "Freelance", Type: models.TransactionTypeIncome, Icon: "laptop"},
	{Name: models.InitialBalanceCategory, Type: models.TransactionTypeIncome, Description: "(System generated)"},
	{Name: "Food", Type: models.TransactionTypeExpense, Icon: "utensils"},
	{Name: "Transport", Type: models.TransactionTypeExpense, Icon: "bus"},
	{Name: "Bills", Type: models.TransactionTypeExpense, Icon: "receipt"},
	{Name: "Shopping", Type: models.TransactionTypeExpense, Icon: "bag"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	email := os.Getenv("SEED_EMAIL")
	name := os.Getenv("SEED_NAME")
	if name == "" {
		name = "Developer"
	}

	v := validation.New()
	v.Email("SEED_EMAIL", email)
	if err := v.Err(); err != nil {
		log.Fatal(err)
	}

	db, err := repositories.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Printf("⚠️ Failed to close database connection: %v", err)
		}
	}()

	account, err := seed(context.Background(), repositories.NewStore(db), email, name)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	token, err := utils.GenerateToken(cfg.JWT, account, models.DefaultPermissions())
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	log.Printf("✅ Account %d (%s) ready", account.ID, account.Email)
	fmt.Println(token)
}

// seed creates the account and any missing default category. Running it again
// is a no-op.
func seed(ctx context.Context, store repositories.Store, email, name string) (*models.Account, error) {
	var account *models.Account
	err := store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		account, err = tx.Accounts().FindByEmail(ctx, email)
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			account = &models.Account{Email: email, Name: name, IsActive: true}
			if err := tx.Accounts().Create(ctx, account); err != nil {
				return err
			}
			log.Printf("Created account %s", email)
		case err != nil:
			return err
		}

		for _, c := range defaultCategories {
			_, err := tx.Categories().FindByName(ctx, account.ID, c.Name, c.Type)
			if err == nil {
				continue
			}
			if !errors.Is(err, repositories.ErrCategoryNotFound) {
				return err
			}
			category := c
			category.UserID = account.ID
			if err := tx.Categories().Create(ctx, &category); err != nil {
				return err
			}
		}
		return nil
	})
	return account, err
}
