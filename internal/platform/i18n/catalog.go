package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Resource bundles. Catalog keys are "<bundle>.<key>".
const (
	// BundleBusiness holds the titles of business errors, keyed by error code.
	BundleBusiness = "business"

	// BundleValidation holds field validation messages, keyed by rule key.
	BundleValidation = "validation"

	// BundleProblems holds the titles of generic problem responses.
	BundleProblems = "problems"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog is an immutable mapping from (culture, key) to localized text.
type Catalog struct {
	entries map[Culture]map[string]string
}

// NewCatalog creates a catalog from in-memory entries.
// The entries are copied, later changes to the argument have no effect.
func NewCatalog(entries map[Culture]map[string]string) *Catalog {
	copied := make(map[Culture]map[string]string, len(entries))
	for culture, texts := range entries {
		copied[culture] = maps.Clone(texts)
	}

	return &Catalog{entries: copied}
}

// Load builds the catalog for the given cultures with the following
// precedence (highest to lowest):
//  1. Locale override file ({dir}/{culture}.yaml), when dir is set
//  2. Embedded locale file (locales/{culture}.yaml)
//
// A culture without any locale file yields an empty catalog section, and
// lookups for it degrade to the Localizer fallback.
func Load(dir string, cultures ...Culture) (*Catalog, error) {
	entries := make(map[Culture]map[string]string, len(cultures))

	for _, culture := range cultures {
		k := koanf.New(".")

		err := loadEmbedded(k, culture)
		if err != nil {
			return nil, fmt.Errorf("loading embedded locale %q: %w", culture, err)
		}

		if dir != "" {
			path := filepath.Join(dir, string(culture)+".yaml")

			err := loadFileIfExists(k, path)
			if err != nil {
				return nil, fmt.Errorf("loading locale override %q: %w", path, err)
			}
		}

		texts := make(map[string]string)
		for key, value := range k.All() {
			texts[key] = fmt.Sprint(value)
		}

		entries[culture] = texts
	}

	return NewCatalog(entries), nil
}

// loadEmbedded loads the embedded locale file for culture if it exists.
func loadEmbedded(k *koanf.Koanf, culture Culture) error {
	data, err := fs.ReadFile(embeddedLocales, "locales/"+string(culture)+".yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	parsed, err := yaml.Parser().Unmarshal(data)
	if err != nil {
		return err
	}

	return k.Load(confmap.Provider(parsed, ""), nil)
}

// loadFileIfExists loads a YAML locale file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// Lookup returns the text stored for culture and key.
func (c *Catalog) Lookup(culture Culture, key string) (string, bool) {
	text, ok := c.entries[culture][key]
	return text, ok
}

func (c *Catalog) has(culture Culture) bool {
	_, ok := c.entries[culture]
	return ok
}

// Cultures returns the cultures present in the catalog, sorted.
func (c *Catalog) Cultures() []Culture {
	return slices.Sorted(maps.Keys(c.entries))
}

// Missing returns the keys of bundle that have no non-empty text for culture.
func (c *Catalog) Missing(culture Culture, bundle string, keys ...string) []string {
	var missing []string

	for _, key := range keys {
		if text, ok := c.Lookup(culture, bundle+"."+key); !ok || text == "" {
			missing = append(missing, key)
		}
	}

	return missing
}

// Localizer returns a localizer resolving keys of bundle.
func (c *Catalog) Localizer(bundle string, opts ...LocalizerOption) *Localizer {
	return NewLocalizer(c, bundle, opts...)
}
