package helper

import (
	restaurantModel "booktable/internal/domains/restaurant/model"
	restaurantRepo "booktable/internal/domains/restaurant/repository"
	userModel "booktable/internal/domains/user/model"
	userRepo "booktable/internal/domains/user/repository"
	gDto "booktable/shared/dto"
	gModel "booktable/shared/model"
	"booktable/shared/password"
	"booktable/shared/role"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	seedActor    = "seed"
	seedPassword = "secret123"
)

type seedUser struct {
	name  string
	email string
	role  role.Role
}

type seedRestaurant struct {
	restaurantModel.Restaurant
	managerEmail string
}

var seedUsers = []seedUser{
	{name: "Alice Johnson", email: "alice@example.com", role: role.Customer},
	{name: "Bob Smith", email: "bob@example.com", role: role.Customer},
	{name: "Chef Mario", email: "mario@example.com", role: role.RestaurantManager},
	{name: "Chef Aditi", email: "aditi@example.com", role: role.RestaurantManager},
}

var seedRestaurants = []seedRestaurant{
	{
		Restaurant: restaurantModel.Restaurant{
			Name: "The Italian Corner", Address: "123 Pasta St", Cuisine: "Italian", Cost: 3, Contact: "1234567890",
			City: "SanJose", State: "CA", ZipCode: "95110", AvailableTables: 10,
			BookingTimes: pq.StringArray{"18:00", "19:00", "20:00"},
		},
		managerEmail: "mario@example.com",
	},
	{
		Restaurant: restaurantModel.Restaurant{
			Name: "Bombay Spice", Address: "88 Curry Ave", Cuisine: "Indian", Cost: 2, Contact: "9876543210",
			City: "SanJose", State: "CA", ZipCode: "95110", AvailableTables: 8,
			BookingTimes: pq.StringArray{"18:30", "19:30", "20:30"},
		},
		managerEmail: "aditi@example.com",
	},
	{
		Restaurant: restaurantModel.Restaurant{
			Name: "Tandoori Palace", Address: "123 Curry Lane", Cuisine: "Indian", Cost: 3, Contact: "1234567890",
			City: "SanJose", State: "CA", ZipCode: "95110", AvailableTables: 10,
			BookingTimes: pq.StringArray{"18:00", "19:00", "20:00"},
		},
		managerEmail: "mario@example.com",
	},
}

// Seeder loads demo accounts and listings. Rows that already exist, matched
// by email or restaurant name, are left untouched.
type Seeder struct {
	users       userRepo.User
	restaurants restaurantRepo.Restaurant
	now         func() time.Time
}

func NewSeeder(users userRepo.User, restaurants restaurantRepo.Restaurant) *Seeder {
	return &Seeder{
		users:       users,
		restaurants: restaurants,
		now:         time.Now,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	hashed, err := password.Hash(seedPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	managers := map[string]string{}

	for _, u := range seedUsers {
		id, err := s.ensureUser(ctx, u, hashed)
		if err != nil {
			return err
		}

		managers[u.email] = id
	}

	for _, r := range seedRestaurants {
		if err := s.ensureRestaurant(ctx, r, managers[r.managerEmail]); err != nil {
			return err
		}
	}

	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, u seedUser, hashed string) (string, error) {
	existing, err := s.users.Get(ctx, userRepo.ByEmail(u.email), userModel.FieldID)
	if err != nil {
		return "", fmt.Errorf("failed to look up user %s: %w", u.email, err)
	}

	if existing.ID != "" {
		log.Info().Str("email", u.email).Msg("User already exists")

		return existing.ID, nil
	}

	user := userModel.User{
		ID:       uuid.NewString(),
		Name:     u.name,
		Email:    u.email,
		Password: hashed,
		Role:     u.role,
		Metadata: gModel.NewMetadata(seedActor, s.now().UTC()),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return "", fmt.Errorf("failed to insert user %s: %w", u.email, err)
	}

	log.Info().Str("email", u.email).Str("role", string(u.role)).Msg("User seeded")

	return user.ID, nil
}

func (s *Seeder) ensureRestaurant(ctx context.Context, r seedRestaurant, managerID string) error {
	exists, err := s.restaurants.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    restaurantModel.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    r.Name,
				Table:    restaurantModel.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	})
	if err != nil {
		return fmt.Errorf("failed to look up restaurant %s: %w", r.Name, err)
	}

	if exists {
		log.Info().Str("name", r.Name).Msg("Restaurant already exists")

		return nil
	}

	restaurant := r.Restaurant
	restaurant.ID = uuid.NewString()
	restaurant.Photos = pq.StringArray{}
	restaurant.Reviews = restaurantModel.Reviews{}
	restaurant.ManagerID = managerID
	restaurant.Metadata = gModel.NewMetadata(seedActor, s.now().UTC())

	if err := s.restaurants.Insert(ctx, restaurant); err != nil {
		return fmt.Errorf("failed to insert restaurant %s: %w", r.Name, err)
	}

	log.Info().Str("name", r.Name).Str("manager", r.managerEmail).Msg("Restaurant seeded")

	return nil
}
