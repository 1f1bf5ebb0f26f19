package domain

// Species is a collectible wildlife species that can be encountered while
// exploring. ActiveTimes lists the time-of-day windows during which the
// species can appear; encounters never select a species outside its window.
type Species struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	ScientificName string      `json:"scientific_name"`
	Description    string      `json:"description"`
	Facts          []string    `json:"facts"`
	Rarity         Rarity      `json:"rarity"`
	XP             int         `json:"xp"`
	ActiveTimes    []TimeOfDay `json:"active_times"`
}

// ActiveDuring reports whether the species can be encountered at the given
// time of day.
func (s Species) ActiveDuring(t TimeOfDay) bool {
	for _, at := range s.ActiveTimes {
		if at == t {
			return true
		}
	}
	return false
}

// speciesCatalog is the static set of discoverable species. Every window
// has at least one candidate so exploration can always resolve, and the
// rare and legendary tiers are reachable in each half of the day.
var speciesCatalog = []Species{
	{
		ID:             "toucan",
		Name:           "Keel-billed Toucan",
		ScientificName: "Ramphastos sulfuratus",
		Description:    "Known for its colorful bill, this iconic bird is the resort mascot.",
		Facts: []string{
			"Their bills can be up to one-third of their body length",
			"They sleep in groups of up to 6 birds in tree holes",
		},
		Rarity:      RarityUncommon,
		XP:          30,
		ActiveTimes: []TimeOfDay{TimeMorning, TimeDay, TimeEvening},
	},
	{
		ID:             "butterfly",
		Name:           "Blue Morpho Butterfly",
		ScientificName: "Morpho peleides",
		Description:    "One of the largest butterflies, with iridescent blue wings.",
		Facts: []string{
			"Their wingspan can reach up to 8 inches",
			"The blue color comes from microscopic scales on their wings",
		},
		Rarity:      RarityRare,
		XP:          50,
		ActiveTimes: []TimeOfDay{TimeMorning, TimeDay},
	},
	{
		ID:             "iguana",
		Name:           "Green Iguana",
		ScientificName: "Iguana iguana",
		Description:    "A large, docile lizard often seen basking in the sun.",
		Facts: []string{
			"They can grow up to 6 feet long including their tail",
			"They are excellent swimmers and can hold their breath for 30 minutes",
		},
		Rarity:      RarityCommon,
		XP:          20,
		ActiveTimes: []TimeOfDay{TimeDay, TimeEvening},
	},
	{
		ID:             "hummingbird",
		Name:           "Ruby-throated Hummingbird",
		ScientificName: "Archilochus colubris",
		Description:    "A tiny bird that hovers in mid-air by rapidly flapping its wings.",
		Facts: []string{
			"Their wings beat about 53 times per second",
			"They can fly backwards and upside down",
		},
		Rarity:      RarityUncommon,
		XP:          30,
		ActiveTimes: []TimeOfDay{TimeMorning, TimeDay},
	},
	{
		ID:             "crab",
		Name:           "Hermit Crab",
		ScientificName: "Coenobita clypeatus",
		Description:    "A small crustacean that lives in abandoned shells.",
		Facts: []string{
			"They change shells as they grow",
			"They can live for over 30 years in the wild",
		},
		Rarity:      RarityCommon,
		XP:          20,
		ActiveTimes: []TimeOfDay{TimeEvening, TimeNight},
	},
	{
		ID:             "quetzal",
		Name:           "Resplendent Quetzal",
		ScientificName: "Pharomachrus mocinno",
		Description:    "An elusive cloud-forest bird with shimmering green tail streamers.",
		Facts: []string{
			"Males grow tail feathers up to three feet long",
			"They nest in holes carved into rotting trees",
		},
		Rarity:      RarityRare,
		XP:          50,
		ActiveTimes: []TimeOfDay{TimeMorning},
	},
	{
		ID:             "jaguar",
		Name:           "Jaguar",
		ScientificName: "Panthera onca",
		Description:    "The largest cat of the Americas, a solitary nocturnal hunter.",
		Facts: []string{
			"Their bite is strong enough to pierce turtle shells",
			"Unlike most cats, they are confident swimmers",
		},
		Rarity:      RarityLegendary,
		XP:          100,
		ActiveTimes: []TimeOfDay{TimeEvening, TimeNight},
	},
}

// SpeciesCatalog returns the full catalog of discoverable species.
func SpeciesCatalog() []Species {
	return speciesCatalog
}

// SpeciesByID looks up a catalog species. Returns ErrUnknownSpecies when
// the ID is not in the catalog.
func SpeciesByID(id string) (Species, error) {
	for _, s := range speciesCatalog {
		if s.ID == id {
			return s, nil
		}
	}
	return Species{}, ErrUnknownSpecies
}
