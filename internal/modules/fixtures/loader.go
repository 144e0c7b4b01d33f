// Package fixtures seeds a database with demonstration data.
package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	accountsport "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/application/port"
	accounts "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/domain"
	bookings "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/bookings/domain"
	categories "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/domain"
	foods "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/foods/domain"
	menus "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/menus/domain"
	pictures "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/pictures/domain"
	restaurants "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database"
	"gorm.io/gorm"
)

const (
	RestaurantCount = 20
	PictureCount    = 20
	UserCount       = 20
)

// CategoryTitles are the categories created by Load.
var CategoryTitles = []string{"Entrée", "Plat", "Dessert"}

// Options tune a Load run.
type Options struct {
	// Append keeps the existing rows; by default every table is emptied first.
	Append bool
	// Seed makes the random values reproducible when not zero.
	Seed uint64
}

// Summary counts the rows created by Load.
type Summary struct {
	Restaurants int
	Pictures    int
	Users       int
	Categories  int
	Foods       int
}

type Loader struct {
	db     *gorm.DB
	tx     *database.Transactor
	hasher accountsport.PasswordHasher
	now    func() time.Time
}

func NewLoader(db *gorm.DB, hasher accountsport.PasswordHasher) *Loader {
	return &Loader{db: db, tx: database.NewTransactor(db), hasher: hasher, now: time.Now}
}

// Load inserts the fixtures in one transaction.
func (l *Loader) Load(ctx context.Context, opts Options) (Summary, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	now := l.now().UTC()

	var sum Summary
	err := l.tx.Within(ctx, func(ctx context.Context) error {
		conn := database.Conn(ctx, l.db)
		if !opts.Append {
			if err := purge(conn); err != nil {
				return err
			}
		}

		restaurantIDs := make([]uint, 0, RestaurantCount)
		for i := 1; i <= RestaurantCount; i++ {
			r := &restaurants.Restaurant{
				Name:          fmt.Sprintf("Restaurant n°%d", i),
				Description:   fmt.Sprintf("Description restaurant n°%d", i),
				AmOpeningTime: []string{},
				PmOpeningTime: []string{},
				MaxGuest:      10 + rng.IntN(41),
			}
			r.MarkCreated(now)
			if err := conn.Create(r).Error; err != nil {
				return fmt.Errorf("create restaurant %d: %w", i, err)
			}
			restaurantIDs = append(restaurantIDs, r.ID)
			sum.Restaurants++
		}

		for i := 1; i <= PictureCount; i++ {
			p := &pictures.Picture{
				Title:        fmt.Sprintf("Image n°%d", i),
				Slug:         fmt.Sprintf("image-n-%d", i),
				RestaurantID: restaurantIDs[rng.IntN(len(restaurantIDs))],
			}
			p.MarkCreated(now)
			if err := conn.Omit("Restaurant").Create(p).Error; err != nil {
				return fmt.Errorf("create picture %d: %w", i, err)
			}
			sum.Pictures++
		}

		for i := 1; i <= UserCount; i++ {
			u, err := l.user(i, rng.IntN(11), now)
			if err != nil {
				return err
			}
			if err := conn.Create(u).Error; err != nil {
				return fmt.Errorf("create user %d: %w", i, err)
			}
			sum.Users++
		}

		cats := make([]categories.Category, 0, len(CategoryTitles))
		for _, title := range CategoryTitles {
			c := categories.Category{Title: title}
			c.MarkCreated(now)
			if err := conn.Create(&c).Error; err != nil {
				return fmt.Errorf("create category %q: %w", title, err)
			}
			cats = append(cats, c)
			sum.Categories++
		}

		for i, title := range []string{"Soupe à l'oignon", "Tartiflette", "Tarte aux myrtilles"} {
			f := &foods.Food{
				Title:       title,
				Description: fmt.Sprintf("Description plat n°%d", i+1),
				Price:       900 + rng.IntN(2100),
				Categories:  []categories.Category{cats[i%len(cats)]},
			}
			f.MarkCreated(now)
			if err := conn.Create(f).Error; err != nil {
				return fmt.Errorf("create food %q: %w", title, err)
			}
			sum.Foods++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	slog.InfoContext(ctx, "fixtures loaded",
		slog.Bool("append", opts.Append),
		slog.Uint64("seed", seed),
		slog.Int("restaurants", sum.Restaurants),
		slog.Int("pictures", sum.Pictures),
		slog.Int("users", sum.Users),
	)
	return sum, nil
}

func (l *Loader) user(i, guests int, now time.Time) (*accounts.User, error) {
	u := accounts.NewUser()
	u.FirstName = fmt.Sprintf("Firstname %d", i)
	u.LastName = fmt.Sprintf("Lastname %d", i)
	u.GuestNumber = &guests
	u.Email = fmt.Sprintf("email.%d@studi.fr", i)
	hash, err := l.hasher.Hash([]byte(fmt.Sprintf("password%d", i)))
	if err != nil {
		return nil, fmt.Errorf("hash password of user %d: %w", i, err)
	}
	u.Password = string(hash)
	u.MarkCreated(now)
	return u, nil
}

// purge deletes children before parents so foreign keys hold.
func purge(conn *gorm.DB) error {
	for _, table := range []string{categories.FoodJoinTable, categories.MenuJoinTable} {
		if err := conn.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("purge %s: %w", table, err)
		}
	}
	for _, model := range []any{
		&bookings.Booking{},
		&menus.Menu{},
		&pictures.Picture{},
		&foods.Food{},
		&categories.Category{},
		&restaurants.Restaurant{},
		&accounts.User{},
	} {
		if err := conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("purge %T: %w", model, err)
		}
	}
	return nil
}

// Models lists every table the fixtures touch, in migration order.
func Models() []any {
	return []any{
		&restaurants.Restaurant{},
		&categories.Category{},
		&foods.Food{},
		&menus.Menu{},
		&bookings.Booking{},
		&pictures.Picture{},
		&accounts.User{},
	}
}
