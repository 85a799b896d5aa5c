package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	repo "github.com/oksasatya/gadget-store-api/internal/domain/repository"
	"github.com/oksasatya/gadget-store-api/pkg/helpers"
)

const adminDisplayName = "System Admin"

// DefaultCatalog is inserted into an empty catalog on first boot.
var DefaultCatalog = []entity.Product{
	{
		Name:     "NeuralPods Pro",
		Category: "Audio",
		Price:    10499,
		Desc:     "AI noise-canceling wireless earbuds with adaptive sound and all-day battery.",
		Specs:    "Bluetooth 5.4, 36-hour battery, IPX5 water resistance",
		Image:    "https://images.unsplash.com/photo-1606220945770-b5b6c2c55bf1?auto=format&fit=crop&w=900&q=80",
	},
	{
		Name:     "SkyFold X1",
		Category: "Mobile",
		Price:    71999,
		Desc:     "Foldable flagship smartphone with immersive display and AI-powered camera system.",
		Specs:    "7.8-inch AMOLED, 512GB storage, 5G",
		Image:    "https://images.unsplash.com/photo-1598327105666-5b89351aff97?auto=format&fit=crop&w=900&q=80",
	},
	{
		Name:     "VisionTab 12",
		Category: "Computing",
		Price:    48999,
		Desc:     "Creator tablet with precision stylus and high-color-accuracy display.",
		Specs:    "12-inch 120Hz screen, 256GB, stylus included",
		Image:    "https://images.unsplash.com/photo-1589739900243-4b52cd9dd2f5?auto=format&fit=crop&w=900&q=80",
	},
	{
		Name:     "PulseWatch 9",
		Category: "Wearables",
		Price:    18999,
		Desc:     "Health-focused smartwatch with ECG, sleep tracking, and coaching insights.",
		Specs:    "AMOLED display, ECG sensor, GPS + LTE",
		Image:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?auto=format&fit=crop&w=900&q=80",
	},
	{
		Name:     "HomeMind Hub",
		Category: "Smart Home",
		Price:    11999,
		Desc:     "Central smart home controller for lights, cameras, speakers, and routines.",
		Specs:    "Voice assistant, multi-protocol support, app control",
		Image:    "https://images.unsplash.com/photo-1558002038-1055907df827?auto=format&fit=crop&w=900&q=80",
	},
	{
		Name:     "AeroCam 4K Mini",
		Category: "Photography",
		Price:    24999,
		Desc:     "Pocket action camera designed for creators on the move.",
		Specs:    "4K 60fps, image stabilization, waterproof housing",
		Image:    "https://images.unsplash.com/photo-1512790182412-b19e6d62bc39?auto=format&fit=crop&w=900&q=80",
	},
	{
		Name:     "ClearView AR Glasses",
		Category: "AR/VR",
		Price:    45999,
		Desc:     "Lightweight AR glasses for notifications, maps, and immersive overlays.",
		Specs:    "Micro-OLED display, spatial audio, gesture control",
		Image:    "https://images.unsplash.com/photo-1593508512255-86ab42a8e620?auto=format&fit=crop&w=900&q=80",
	},
	{
		Name:     "CoreConsole Neo",
		Category: "Gaming",
		Price:    29999,
		Desc:     "Next-gen console designed for high refresh-rate competitive gaming.",
		Specs:    "Ray tracing, 1TB SSD, 4K output",
		Image:    "https://images.unsplash.com/photo-1606144042614-b2417e99c4e3?auto=format&fit=crop&w=900&q=80",
	},
}

// Seeder bootstraps the admin account and the default catalog. Both steps
// are idempotent.
type Seeder struct {
	Users    repo.UserRepository
	Products repo.ProductRepository
	Index    ProductIndex // optional
	Logger   *logrus.Logger
}

func NewSeeder(users repo.UserRepository, products repo.ProductRepository, index ProductIndex, logger *logrus.Logger) *Seeder {
	return &Seeder{Users: users, Products: products, Index: index, Logger: logger}
}

// SeedAdmin makes sure email belongs to an admin. An existing account is
// promoted and given password only if it has none.
func (s *Seeder) SeedAdmin(ctx context.Context, email, password string) error {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return validationError("admin email and password are required")
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if existing != nil {
		changed := false
		if existing.Role != entity.RoleAdmin {
			existing.Role = entity.RoleAdmin
			changed = true
		}
		if existing.Password == "" {
			hash, err := helpers.HashPassword(password)
			if err != nil {
				return err
			}
			existing.Password = hash
			changed = true
		}
		if !changed {
			return nil
		}
		if err := s.Users.Update(ctx, existing); err != nil {
			return err
		}
		s.Logger.WithField("email", email).Info("admin account updated")
		return nil
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	u := &entity.User{Name: adminDisplayName, Email: email, Role: entity.RoleAdmin, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return err
	}
	s.Logger.WithField("email", email).Info("seeded admin account")
	return nil
}

// SeedCatalog inserts DefaultCatalog when there are no products yet.
func (s *Seeder) SeedCatalog(ctx context.Context) error {
	n, err := s.Products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.Logger.WithField("existing", n).Info("product seeding skipped")
		return nil
	}
	items := make([]entity.Product, len(DefaultCatalog))
	copy(items, DefaultCatalog)
	if err := s.Products.CreateMany(ctx, items); err != nil {
		return err
	}
	if s.Index != nil {
		for _, p := range items {
			if err := s.Index.Index(ctx, p); err != nil {
				s.Logger.WithError(err).WithField("product_id", p.ID).Warn("search index update failed")
			}
		}
	}
	s.Logger.WithField("count", len(items)).Info("seeded default catalog")
	return nil
}

// Run performs every seeding step, logging failures instead of returning
// them.
func (s *Seeder) Run(ctx context.Context, adminEmail, adminPassword string, catalog bool) {
	if err := s.SeedAdmin(ctx, adminEmail, adminPassword); err != nil {
		s.Logger.WithError(err).Error("admin seeding failed")
	}
	if !catalog {
		return
	}
	if err := s.SeedCatalog(ctx); err != nil {
		s.Logger.WithError(err).Error("product seeding failed")
	}
}
