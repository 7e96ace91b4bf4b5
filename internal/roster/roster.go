package roster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/diegoclair/attendance-bot/internal/domain"
	"github.com/diegoclair/attendance-bot/internal/domain/contract"
	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

type file struct {
	Members []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
		Note string `yaml:"note"`
	} `yaml:"members"`
}

// Parse decodes a roster document of the form:
//
//	members:
//	  - id: 33069
//	    name: Alice
//	    note: optional
func Parse(data []byte) ([]entity.Member, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("roster: document is empty")
	}

	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("roster: decode: %w", err)
	}

	seen := make(map[string]bool, len(doc.Members))
	members := make([]entity.Member, 0, len(doc.Members))
	for i, m := range doc.Members {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return nil, fmt.Errorf("roster: member %d has no id", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("roster: duplicate member id %s", id)
		}
		seen[id] = true

		name := strings.TrimSpace(m.Name)
		if name == "" {
			name = domain.DefaultMemberNamePrefix + id
		}
		members = append(members, entity.Member{ID: id, DisplayName: name, Note: strings.TrimSpace(m.Note)})
	}
	return members, nil
}

// Load reads the roster file at path. A missing file yields the default roster.
func Load(path string) ([]entity.Member, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("roster: read %s: %w", path, err)
	}

	members, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return members, nil
}

// Default is the built-in roster 33069..33085.
func Default() []entity.Member {
	members := make([]entity.Member, 0, domain.DefaultRosterLastID-domain.DefaultRosterFirstID+1)
	for id := domain.DefaultRosterFirstID; id <= domain.DefaultRosterLastID; id++ {
		memberID := strconv.Itoa(id)
		members = append(members, entity.Member{
			ID:          memberID,
			DisplayName: domain.DefaultMemberNamePrefix + memberID,
		})
	}
	return members
}

// Seed stores members when the roster table is still empty and reports whether it did.
// An existing roster is never replaced.
func Seed(ctx context.Context, dm contract.DataManager, members []entity.Member) (bool, error) {
	count, err := dm.Member().Count()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	if count > 0 {
		return false, nil
	}

	err = dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		for i := range members {
			if err := tx.Member().Create(&members[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	return true, nil
}
