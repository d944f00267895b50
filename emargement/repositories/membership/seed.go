package membership

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sorolassina/mca-api/emargement/types"
)

// Seed is a YAML snapshot of the membership data owned by the main application
type Seed struct {
	Programmes  []*types.Programme  `yaml:"programmes"`
	Events      []*types.Event      `yaml:"events"`
	Enrollments []*types.Enrollment `yaml:"enrollments"`
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed %s: %w", path, err)
	}

	var seed Seed
	if err = yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed %s: %w", path, err)
	}
	return &seed, nil
}

// Import writes the seed through w. Enrollments must reference a seeded or already stored programme.
func (s *Seed) Import(ctx context.Context, w MembershipWriter) error {
	programmes := make(map[uint64]bool, len(s.Programmes))
	for _, programme := range s.Programmes {
		if programme.ID == types.AnyProgramme {
			return types.NewErrf(types.KindValidation, "programme id %d is reserved", types.AnyProgramme)
		}
		if err := w.PutProgramme(ctx, programme); err != nil {
			return fmt.Errorf("failed to import programme %d: %w", programme.ID, err)
		}
		programmes[programme.ID] = true
	}

	for _, event := range s.Events {
		if event.Status == "" {
			event.Status = types.EventPlanned
		}
		if err := w.PutEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to import event %d: %w", event.ID, err)
		}
	}

	for _, enrollment := range s.Enrollments {
		if enrollment.Email == "" {
			return types.NewErrf(types.KindValidation, "enrollment %d has no email", enrollment.ID)
		}
		if enrollment.ProgrammeID == types.AnyProgramme {
			return types.NewErrf(types.KindValidation, "enrollment %d has no programme", enrollment.ID)
		}
		if err := w.PutEnrollment(ctx, enrollment); err != nil {
			return fmt.Errorf("failed to import enrollment %d: %w", enrollment.ID, err)
		}
	}
	return nil
}
