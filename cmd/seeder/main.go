// Package main seeds the database with demo roommate profiles.
//
// Useful for local development and load testing:
//
//	go run ./cmd/seeder -count 200 -seed 42
//
// Generation is deterministic for a given seed, so a wiped database can be
// refilled with the same dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/roomie-hub/roomie-hub/config"
	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/auth"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/persistence/postgres"
)

// demoPassword is the password for every seeded account.
const demoPassword = "roomie-demo"

var cities = []struct {
	City  string
	State string
	Areas []string
}{
	{"Austin", "Texas", []string{"Downtown", "East Side", "Hyde Park", "South Congress"}},
	{"Houston", "Texas", []string{"Midtown", "Montrose", "The Heights"}},
	{"Dallas", "Texas", []string{"Uptown", "Deep Ellum", "Oak Lawn"}},
	{"Seattle", "Washington", []string{"Capitol Hill", "Ballard", "Fremont"}},
	{"Portland", "Oregon", []string{"Pearl District", "Hawthorne", "Alberta"}},
	{"Denver", "Colorado", []string{"LoDo", "Capitol Hill", "Highlands"}},
}

var firstNames = []string{
	"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Quinn",
	"Avery", "Dana", "Jamie", "Reese", "Skyler", "Cameron", "Drew", "Emery",
}

var lastNames = []string{
	"Smith", "Johnson", "Lee", "Garcia", "Chen", "Patel", "Kim", "Nguyen",
	"Brown", "Davis", "Martinez", "Wilson", "Anderson", "Taylor", "Thomas",
}

var bios = []string{
	"Software engineer who keeps the kitchen clean and the music low.",
	"Grad student, early riser, always up for a weekend hike.",
	"Nurse on rotating shifts looking for a quiet, friendly place.",
	"Remote worker with a small library and a big coffee habit.",
	"New to the city, looking for roommates who like cooking together.",
	"Musician (headphones only at home, promise).",
}

var amenities = []string{"WiFi", "Washer", "Parking", "AC", "Gym", "Balcony", "Dishwasher"}

func main() {
	var (
		count   = flag.Int("count", 50, "number of profiles to create")
		seed    = flag.Int64("seed", 1, "random seed for deterministic generation")
		offers  = flag.Float64("offer-chance", 0.4, "probability a profile offers a room")
		migrate = flag.Bool("migrate", true, "run pending migrations before seeding")
	)
	flag.Parse()

	if err := run(*count, *seed, *offers, *migrate); err != nil {
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}
}

func run(count int, seed int64, offerChance float64, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	if migrate {
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	repo := postgres.NewProfileRepository(conn)
	rng := rand.New(rand.NewSource(seed))

	// Every demo account shares one password; hash it once.
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	passwordHash, err := hasher.Hash(demoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	created := 0
	for i := 0; i < count; i++ {
		p, err := randomProfile(rng, passwordHash, offerChance)
		if err != nil {
			return fmt.Errorf("failed to build profile %d: %w", i, err)
		}
		if err := repo.Create(ctx, p); err != nil {
			if shared.IsAlreadyExists(err) {
				continue
			}
			return fmt.Errorf("failed to insert profile %d: %w", i, err)
		}
		created++
	}

	fmt.Fprintf(os.Stdout, "Seeded %d profiles (password for all accounts: %q)\n", created, demoPassword)
	return nil
}

func randomProfile(rng *rand.Rand, passwordHash string, offerChance float64) (*profile.Profile, error) {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	loc := cities[rng.Intn(len(cities))]

	id := uuid.NewString()
	minRent := 400 + rng.Intn(8)*100
	maxRent := minRent + 300 + rng.Intn(10)*100

	prefs := profile.Preferences{
		RentRange:         profile.RentRange{Min: minRent, Max: maxRent},
		Duration:          pick(rng, profile.DurationShort, profile.DurationMedium, profile.DurationLong, profile.DurationYearPlus, profile.DurationFlexible),
		GenderPreference:  pick(rng, profile.GenderPrefMale, profile.GenderPrefFemale, profile.GenderPrefAny, profile.GenderPrefAny),
		FoodPreference:    pick(rng, profile.FoodVegetarian, profile.FoodNonVegetarian, profile.FoodAny, profile.FoodAny),
		SmokingPreference: pick(rng, profile.SmokingNonSmoker, profile.SmokingSmoker, profile.SmokingAny),
		PetPreference:     pick(rng, profile.PetFriendly, profile.PetNone, profile.PetAny),
		Schedule:          pick(rng, profile.ScheduleEarlyRiser, profile.ScheduleNightOwl, profile.ScheduleFlexible),
	}

	params := profile.NewProfileParams{
		ID:           id,
		Email:        fmt.Sprintf("%s.%s.%s@example.com", first, last, id[:8]),
		PasswordHash: passwordHash,
		Name:         first + " " + last,
		Age:          profile.MinAge + rng.Intn(25),
		Gender:       pick(rng, profile.GenderMale, profile.GenderFemale, profile.GenderOther),
		Bio:          bios[rng.Intn(len(bios))],
		Location: profile.Location{
			City:  loc.City,
			State: loc.State,
			Area:  loc.Areas[rng.Intn(len(loc.Areas))],
		},
		Preferences: &prefs,
	}

	if rng.Float64() < offerChance {
		params.RoomDetails = &profile.RoomDetails{
			IsOffering:  true,
			Rent:        minRent + rng.Intn(maxRent-minRent),
			Description: fmt.Sprintf("Room available in %s, %s.", loc.Areas[rng.Intn(len(loc.Areas))], loc.City),
			Amenities:   pickN(rng, amenities, 2+rng.Intn(3)),
			RoomType:    pick(rng, profile.RoomPrivate, profile.RoomShared, profile.RoomStudio),
		}
	}

	return profile.NewProfile(params)
}

// pick returns a uniformly random element. Repeating a value in the argument
// list weights it higher.
func pick[T any](rng *rand.Rand, options ...T) T {
	return options[rng.Intn(len(options))]
}

// pickN returns n distinct random elements from options.
func pickN(rng *rand.Rand, options []string, n int) []string {
	if n > len(options) {
		n = len(options)
	}
	perm := rng.Perm(len(options))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, options[idx])
	}
	return out
}
