package characters

// Static substitute data served when the upstream catalog is unavailable.
// Keeping the browse surface alive is a deliberate availability trade-off;
// the rest of the system never reacts to upstream outages.

var fallbackItems = []Character{
	{
		ID:          1,
		Name:        "Goku",
		Ki:          "60,000,000,000,000,000",
		MaxKi:       "90,000,000,000,000,000,000,000,000,000,000,000",
		Race:        "Saiyan",
		Gender:      "Male",
		Description: "Goku es el protagonista principal de Dragon Ball. Es un Saiyan enviado a la Tierra.",
		Image:       "/api/placeholder/300/400",
		Affiliation: "Z Fighter",
		Planet:      "Vegeta",
	},
	{
		ID:          2,
		Name:        "Vegeta",
		Ki:          "54,000,000,000,000,000",
		MaxKi:       "19,400,000,000,000,000,000,000,000,000,000,000",
		Race:        "Saiyan",
		Gender:      "Male",
		Description: "Vegeta es el príncipe de los Saiyans y uno de los personajes principales de Dragon Ball.",
		Image:       "/api/placeholder/300/400",
		Affiliation: "Z Fighter",
		Planet:      "Vegeta",
	},
	{
		ID:          3,
		Name:        "Piccolo",
		Ki:          "2,000,000,000",
		MaxKi:       "500,000,000,000,000,000",
		Race:        "Namekian",
		Gender:      "Male",
		Description: "Piccolo es un Namekiano y uno de los guerreros Z más poderosos.",
		Image:       "/api/placeholder/300/400",
		Affiliation: "Z Fighter",
		Planet:      "Namek",
	},
}

func fallbackPage() Result {
	items := make([]Character, len(fallbackItems))
	copy(items, fallbackItems)
	return Result{
		Kind:  KindPaginated,
		Items: items,
		Meta: PageMeta{
			TotalItems:   len(items),
			ItemCount:    len(items),
			ItemsPerPage: 10,
			TotalPages:   1,
			CurrentPage:  1,
		},
	}
}

func fallbackCharacter(id int) Result {
	for _, ch := range fallbackItems {
		if ch.ID == id {
			return Result{Kind: KindSingle, Items: []Character{ch}}
		}
	}
	return Result{Kind: KindSingle, Items: []Character{fallbackItems[0]}}
}

func emptyResult() Result {
	return Result{Kind: KindEmpty}
}
