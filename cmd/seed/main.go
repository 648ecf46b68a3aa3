package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentledger/internal/database"
	"rentledger/internal/domain"
	"rentledger/internal/pkg/logger"
)

var demoAssets = []struct {
	name     string
	category string
	price    int64
}{
	{"Booth A", "Stands", 1000},
	{"Booth B", "Stands", 1200},
	{"Party tent 6x12", "Tents", 2500},
	{"PA system", "Sound", 1800},
	{"LED wall", "Video", 6400},
	{"Generator 20kVA", "Power", 3100},
}

var demoTemplates = []struct {
	name string
	cost *int64
}{
	{"Transport", ptr(int64(80))},
	{"Cleaning", ptr(int64(35))},
	{"Repairs", nil},
}

var demoClients = []string{"ACME Events", "City Hall", "Northwind", "Blue Lagoon Festival"}

func ptr[T any](v T) *T { return &v }

func main() {
	var (
		dsn      string
		email    string
		password string
		months   int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a local database with demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.Must("dev")
			defer log.Sync()

			db, err := database.Connect(dsn, log)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if err := database.MigrateUp(db, log); err != nil {
				return err
			}
			return seed(db, log, email, password, months)
		},
	}

	_ = godotenv.Load()
	defaultDSN := os.Getenv("DATABASE_URL")
	if defaultDSN == "" {
		defaultDSN = "rentledger.db"
	}
	cmd.Flags().StringVar(&dsn, "db", defaultDSN, "database DSN")
	cmd.Flags().StringVar(&email, "email", "admin@rentledger.local", "demo login email")
	cmd.Flags().StringVar(&password, "password", "admin123", "demo login password")
	cmd.Flags().IntVar(&months, "months", 14, "months of rental history to generate")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func seed(db *gorm.DB, log *zap.Logger, email, password string, months int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return db.Transaction(func(tx *gorm.DB) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := domain.User{Email: email}
		if err := tx.Where(domain.User{Email: email}).Attrs(domain.User{PasswordHash: string(hash)}).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		templates := make([]domain.ExpenseTemplate, 0, len(demoTemplates))
		for _, t := range demoTemplates {
			tpl := domain.ExpenseTemplate{Name: t.name}
			if t.cost != nil {
				tpl.DefaultCost = decimal.NewNullDecimal(decimal.NewFromInt(*t.cost))
			}
			tpl.Stamp(user.ID)
			if err := tx.Create(&tpl).Error; err != nil {
				return fmt.Errorf("seed template: %w", err)
			}
			templates = append(templates, tpl)
		}

		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
		statuses := []domain.LocationStatus{domain.LocationCompleted, domain.LocationCompleted, domain.LocationPlanned, domain.LocationCancelled}

		locationCount := 0
		for _, d := range demoAssets {
			asset := domain.Asset{
				Name:          d.name,
				Category:      d.category,
				Status:        domain.AssetAvailable,
				PurchasePrice: decimal.NewFromInt(d.price),
				PurchaseDate:  start.AddDate(0, 0, -rng.Intn(90)),
			}
			asset.Stamp(user.ID)
			if err := tx.Create(&asset).Error; err != nil {
				return fmt.Errorf("seed asset: %w", err)
			}

			for i := 0; i < months*2; i++ {
				if rng.Intn(3) == 0 {
					continue
				}
				loc := domain.Location{
					AssetID:        asset.ID,
					Date:           start.AddDate(0, i/2, rng.Intn(28)),
					Price:          decimal.NewFromInt(d.price / 10).Add(decimal.NewFromInt(int64(rng.Intn(200)))),
					ClientName:     ptr(demoClients[rng.Intn(len(demoClients))]),
					LocationStatus: statuses[rng.Intn(len(statuses))],
				}
				loc.Stamp(user.ID)
				if err := tx.Create(&loc).Error; err != nil {
					return fmt.Errorf("seed location: %w", err)
				}
				locationCount++

				if rng.Intn(2) == 0 {
					tpl := templates[rng.Intn(len(templates))]
					cost := decimal.NewFromInt(int64(20 + rng.Intn(100)))
					if tpl.DefaultCost.Valid {
						cost = tpl.DefaultCost.Decimal
					}
					exp := domain.Expense{Name: tpl.Name, Cost: cost, LocationID: &loc.ID, TemplateID: &tpl.ID}
					exp.Stamp(user.ID)
					if err := tx.Create(&exp).Error; err != nil {
						return fmt.Errorf("seed expense: %w", err)
					}
				}
			}
		}

		for _, name := range []string{"Warehouse rent", "Insurance"} {
			exp := domain.Expense{Name: name, Cost: decimal.NewFromInt(int64(300 + rng.Intn(400)))}
			exp.Stamp(user.ID)
			if err := tx.Create(&exp).Error; err != nil {
				return fmt.Errorf("seed global expense: %w", err)
			}
		}

		log.Info("demo data seeded",
			zap.String("email", email),
			zap.Int("assets", len(demoAssets)),
			zap.Int("locations", locationCount),
		)
		return nil
	})
}
