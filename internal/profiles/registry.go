package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// Registry holds the available profiles: builtins plus any custom YAML
// profiles loaded from a directory. Custom profiles with a builtin's name
// shadow the builtin.
type Registry struct {
	profiles map[string]*domain.Profile
}

// NewRegistry creates a registry seeded with the builtin profiles.
func NewRegistry() *Registry {
	return &Registry{profiles: Builtin()}
}

// LoadDir reads every .yaml/.yml file in dir as a profile definition and adds
// it to the registry. A missing directory is not an error; a profile that
// fails validation is.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading profiles dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		profile, err := loadFile(path)
		if err != nil {
			return err
		}
		r.profiles[profile.Name] = profile
	}

	return nil
}

// Get returns a profile by name.
func (r *Registry) Get(name string) (*domain.Profile, error) {
	p, ok := r.profiles[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownProfile, name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the registered profile names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadFile parses and validates one YAML profile definition.
func loadFile(path string) (*domain.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	if profile.Name == "" {
		profile.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	profile.Name = strings.ToLower(profile.Name)

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}

	return &profile, nil
}
