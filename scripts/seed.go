package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/lendmarket/config"
	"github.com/yourusername/lendmarket/models"
	"github.com/yourusername/lendmarket/repositories"
	"github.com/yourusername/lendmarket/services"
)

// Seeds the database with demo accounts, operations, and bids. Every seeded
// account logs in with the password below.
const seedPassword = "password123"

var (
	firstNames = []string{"Ana", "Luis", "Marta", "Jorge", "Lucia", "Pedro", "Carla", "Diego", "Elena", "Raul"}
	lastNames  = []string{"Garcia", "Lopez", "Martinez", "Torres", "Ramirez", "Flores", "Ortega", "Vargas", "Castro", "Mendez"}
	cities     = []string{"Madrid", "Barcelona", "Valencia", "Sevilla", "Bilbao", "Granada"}
	roles      = []models.Role{models.RoleAdmin, models.RoleOperator, models.RoleInvestor}
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	operationRepo := repositories.NewOperationRepository(db)
	bidRepo := repositories.NewBidRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService)
	ledgerService := services.NewLedgerService(operationRepo, bidRepo)

	const (
		numUsers      = 30
		numOperations = 100
		numBids       = 50
	)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		first := firstNames[rand.Intn(len(firstNames))]
		last := lastNames[rand.Intn(len(lastNames))]
		user, err := authService.Register(services.RegisterRequest{
			FirstName: first,
			LastName:  last,
			Nickname:  fmt.Sprintf("%s%d", first, i),
			Email:     fmt.Sprintf("%s.%s.%d@example.com", first, last, i),
			Phone:     fmt.Sprintf("+34 6%08d", rand.Intn(100000000)),
			Password:  seedPassword,
			Role:      roles[rand.Intn(len(roles))],
			Country:   "Spain",
			State:     "Madrid",
			City:      cities[rand.Intn(len(cities))],
		})
		if err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}
		users = append(users, user)
	}

	operators := filterByRole(users, models.RoleOperator)
	investors := filterByRole(users, models.RoleInvestor)
	if len(operators) == 0 || len(investors) == 0 {
		log.Fatal("Seed run produced no operators or no investors, re-run")
	}

	operations := make([]*models.Operation, 0, numOperations)
	for i := 0; i < numOperations; i++ {
		operator := operators[rand.Intn(len(operators))]
		op, err := ledgerService.CreateOperation(
			operator.ID,
			randomAmount(1000, 10000),
			randomAmount(5, 15),
			time.Now().AddDate(0, 0, 1+rand.Intn(30)),
		)
		if err != nil {
			log.Fatalf("Failed to seed operation: %v", err)
		}
		operations = append(operations, op)
	}

	for i := 0; i < numBids; i++ {
		investor := investors[rand.Intn(len(investors))]
		op := operations[rand.Intn(len(operations))]
		amount := randomAmount(100, 1000)
		if _, err := ledgerService.PlaceBid(investor.ID, op.ID, amount); err != nil {
			log.Fatalf("Failed to seed bid: %v", err)
		}
	}

	log.Printf("Seeded %d users, %d operations, %d bids", numUsers, numOperations, numBids)
}

func filterByRole(users []*models.User, role models.Role) []*models.User {
	var out []*models.User
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// randomAmount picks a value in [min, max) rounded to 2 decimal places.
func randomAmount(min, max float64) decimal.Decimal {
	v := min + rand.Float64()*(max-min)
	return decimal.NewFromFloat(v).Round(2)
}
