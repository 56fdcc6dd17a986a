package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/bloodconnect/internal/client/models"
	"github.com/dmitrijs2005/bloodconnect/internal/client/storage"
	"github.com/dmitrijs2005/bloodconnect/internal/common"
	"github.com/dmitrijs2005/bloodconnect/internal/logging"
	"gopkg.in/yaml.v3"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Donor age limits.
const (
	MinDonorAge = 18
	MaxDonorAge = 65
)

// DonorService manages the donor registry kept in the donors slot.
//
// Contract:
//   - Register: validate and append one donor; ErrDonorExists on a duplicate
//     phone within the same blood group.
//   - Find: filter by city substring and blood group, sorted by name.
//   - List: every donor in registration order.
//   - Seed: bulk-register donors from a YAML file, skipping duplicates.
type DonorService interface {
	Register(ctx context.Context, d models.Donor) (models.Donor, error)
	Find(ctx context.Context, f models.DonorFilter) ([]models.Donor, error)
	List(ctx context.Context) ([]models.Donor, error)
	Seed(ctx context.Context, path string) (int, error)
}

type donorService struct {
	store storage.Store
	log   logging.Logger
	now   func() time.Time
}

// NewDonorService constructs a DonorService over store.
func NewDonorService(store storage.Store, log logging.Logger) DonorService {
	if log == nil {
		log = logging.Discard()
	}
	return &donorService{store: store, log: log.With("component", "donors"), now: time.Now}
}

// seedFile is the YAML layout accepted by Seed.
type seedFile struct {
	Donors []models.Donor `yaml:"donors"`
}

func (s *donorService) Register(ctx context.Context, d models.Donor) (models.Donor, error) {
	d, err := s.prepare(ctx, d)
	if err != nil {
		return models.Donor{}, err
	}

	err = s.store.Update(ctx, func(ctx context.Context, tx storage.Repository) error {
		donors, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		if containsDonor(donors, d) {
			return ErrDonorExists
		}
		return writeSlot(ctx, tx, storage.SlotDonors, append(donors, d))
	})
	if err != nil {
		return models.Donor{}, err
	}

	s.log.Info(ctx, "donor registered", "id", d.ID, "blood_group", d.BloodGroup, "city", d.City)
	return d, nil
}

func (s *donorService) Find(ctx context.Context, f models.DonorFilter) ([]models.Donor, error) {
	donors, err := s.load(ctx, s.store)
	if err != nil {
		return nil, err
	}

	out := make([]models.Donor, 0, len(donors))
	for _, d := range donors {
		if f.Matches(d) {
			out = append(out, d)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Donor) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out, nil
}

func (s *donorService) List(ctx context.Context) ([]models.Donor, error) {
	return s.load(ctx, s.store)
}

func (s *donorService) Seed(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read donor seed: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("failed to parse donor seed %s: %w", path, err)
	}

	prepared := make([]models.Donor, 0, len(file.Donors))
	for i, d := range file.Donors {
		p, err := s.prepare(ctx, d)
		if err != nil {
			return 0, fmt.Errorf("donor seed entry %d: %w", i+1, err)
		}
		prepared = append(prepared, p)
	}

	added := 0
	err = s.store.Update(ctx, func(ctx context.Context, tx storage.Repository) error {
		added = 0
		donors, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		for _, d := range prepared {
			if containsDonor(donors, d) {
				continue
			}
			donors = append(donors, d)
			added++
		}
		if added == 0 {
			return nil
		}
		return writeSlot(ctx, tx, storage.SlotDonors, donors)
	})
	if err != nil {
		return 0, err
	}

	s.log.Info(ctx, "donor seed loaded", "path", path, "added", added)
	return added, nil
}

// prepare validates d and fills the generated fields.
func (s *donorService) prepare(ctx context.Context, d models.Donor) (models.Donor, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.City = strings.TrimSpace(d.City)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)

	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.BloodGroup) == "" {
		missing = append(missing, "blood group")
	}
	if d.City == "" {
		missing = append(missing, "city")
	}
	if d.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return d, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	bg, ok := models.NormalizeBloodGroup(d.BloodGroup)
	if !ok {
		return d, fmt.Errorf("%w: unknown blood group %q", ErrValidation, d.BloodGroup)
	}
	d.BloodGroup = bg

	if d.Age != 0 && (d.Age < MinDonorAge || d.Age > MaxDonorAge) {
		return d, fmt.Errorf("%w: age must be between %d and %d", ErrValidation, MinDonorAge, MaxDonorAge)
	}
	if d.Email != "" && !emailPattern.MatchString(d.Email) {
		return d, fmt.Errorf("%w: invalid email %q", ErrValidation, d.Email)
	}

	if d.ID == "" {
		d.ID = common.NewID()
	}
	if d.RegisteredAt.IsZero() {
		d.RegisteredAt = s.now().UTC()
	}
	if sess, ok := SessionFrom(ctx); ok {
		if u, ok := sess.User(); ok {
			d.RegisteredBy = u.ID
		}
	}
	return d, nil
}

// load reads the donors slot. A malformed collection is logged and treated
// as empty.
func (s *donorService) load(ctx context.Context, r storage.Repository) ([]models.Donor, error) {
	var donors []models.Donor
	_, err := readSlot(ctx, r, storage.SlotDonors, &donors)
	if errors.Is(err, errCorruptSlot) {
		s.log.Warn(ctx, "ignoring malformed donors", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load donors: %w", err)
	}
	return donors, nil
}

func containsDonor(donors []models.Donor, d models.Donor) bool {
	return slices.ContainsFunc(donors, func(x models.Donor) bool {
		return x.Phone == d.Phone && x.BloodGroup == d.BloodGroup
	})
}
