package generator

import (
	"fmt"
	"math/rand"
	"slices"
)

// theme gives each depth an identity: what its levels are called and what lives there.
type theme struct {
	names      []string
	adjectives []string
	roster     map[rune]string
}

// themes cycle with depth so each depth has an identity
var themes = []theme{
	{
		names:      []string{"Cellar", "Storeroom", "Pantry", "Wine Vault"},
		adjectives: []string{"Damp", "Musty", "Forgotten", "Flooded"},
		roster:     map[rune]string{'r': "rat", 'b': "bat"},
	},
	{
		names:      []string{"Crypt", "Ossuary", "Catacomb", "Tomb"},
		adjectives: []string{"Silent", "Sealed", "Crumbling", "Cold"},
		roster:     map[rune]string{'z': "zombie", 's': "skeleton", 'r': "rat"},
	},
	{
		names:      []string{"Warren", "Den", "Barracks", "Guardroom"},
		adjectives: []string{"Smoky", "Reeking", "Fortified", "Noisy"},
		roster:     map[rune]string{'g': "goblin", 'k': "kobold", 'o': "orc"},
	},
	{
		names:      []string{"Cavern", "Grotto", "Chasm", "Hollow"},
		adjectives: []string{"Echoing", "Dripping", "Glowing", "Deep"},
		roster:     map[rune]string{'o': "orc", 't': "troll", 'b': "bat"},
	},
}

// themeFor returns the theme for a 1-based depth; depths below 1 count as 1.
func themeFor(depth int) theme {
	if depth <= 0 {
		return themes[0]
	}
	return themes[(depth-1)%len(themes)]
}

// glyphs returns the roster's glyphs in a stable order
func (t theme) glyphs() []rune {
	out := make([]rune, 0, len(t.roster))
	for g := range t.roster {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

func (t theme) levelName(rng *rand.Rand) string {
	return fmt.Sprintf("%s %s", t.adjectives[rng.Intn(len(t.adjectives))], t.names[rng.Intn(len(t.names))])
}
