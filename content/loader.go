package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var contentLogger = log.With().Str("logger_name", "content::loader").Logger()

//go:embed data/*.json
var embeddedData embed.FS

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var dataFiles = map[Kind]string{
	KindJoker:    "jokers.json",
	KindTarot:    "tarot_cards.json",
	KindSpectral: "spectral_cards.json",
	KindPlanet:   "planet_cards.json",
	KindVoucher:  "vouchers.json",
}

// Catalog holds every definition known to the game, grouped by kind.
type Catalog struct {
	pools  map[Kind][]Definition
	byName map[Kind]map[string]Definition
}

// LoadCatalog decodes the content bundled with the binary.
func LoadCatalog() (*Catalog, error) {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, errors.Wrap(err, "Unable to open embedded content")
	}
	return LoadCatalogFS(sub)
}

// LoadCatalogFromDir decodes content files from a directory. Missing files fall back to the embedded content.
func LoadCatalogFromDir(dir string) (*Catalog, error) {
	embedded, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	override, err := loadCatalog(os.DirFS(dir), true)
	if err != nil {
		return nil, errors.Wrapf(err, "Error loading content from [%s]", dir)
	}
	for kind, defs := range override.pools {
		embedded.setPool(kind, defs)
	}
	return embedded, nil
}

func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	return loadCatalog(fsys, false)
}

// MustLoadCatalog is used where content is known to be valid, such as tests.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(fmt.Sprintf("Cannot load content catalog: %v", err))
	}
	return c
}

func loadCatalog(fsys fs.FS, skipMissing bool) (*Catalog, error) {
	c := NewCatalog()
	for kind, file := range dataFiles {
		bytes, err := fs.ReadFile(fsys, file)
		if err != nil {
			if skipMissing && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Wrapf(err, "Error reading content file [%s]", file)
		}
		var defs []Definition
		err = json.Unmarshal(bytes, &defs)
		if err != nil {
			return nil, errors.Wrapf(err, "Error parsing content file [%s]", file)
		}
		for i := range defs {
			defs[i].Kind = kind
		}
		c.setPool(kind, defs)
		contentLogger.Debug().Str("kind", string(kind)).Int("count", len(defs)).Msg("Content loaded")
	}
	return c, nil
}

func NewCatalog() *Catalog {
	return &Catalog{
		pools:  make(map[Kind][]Definition),
		byName: make(map[Kind]map[string]Definition),
	}
}

func (c *Catalog) setPool(kind Kind, defs []Definition) {
	names := make(map[string]Definition, len(defs))
	for i := range defs {
		defs[i].Kind = kind
		names[defs[i].Name] = defs[i]
	}
	c.pools[kind] = defs
	c.byName[kind] = names
}

func (c *Catalog) Pool(kind Kind) []Definition {
	return c.pools[kind]
}

func (c *Catalog) Find(kind Kind, name string) (Definition, bool) {
	d, ok := c.byName[kind][name]
	return d, ok
}

func (c *Catalog) JokersByRarity(rarity Rarity) []Definition {
	var defs []Definition
	for _, d := range c.pools[KindJoker] {
		if d.Rarity == rarity {
			defs = append(defs, d)
		}
	}
	return defs
}

// Names lists the definition names of a kind in sorted order.
func (c *Catalog) Names(kind Kind) []string {
	names := make([]string, 0, len(c.byName[kind]))
	for name := range c.byName[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
