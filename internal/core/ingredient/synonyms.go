package ingredient

// synonyms maps surface forms to their canonical ingredient. The table is
// consulted both before and after singularization, so keys may be plural,
// misspelled or multi-word; values are already canonical. A few entries
// ("tomatoes", "eggs") duplicate what the suffix rules produce — both paths
// must agree.
var synonyms = map[string]string{
	"tomatoes":     "tomato",
	"bell pepper":  "pepper",
	"peppers":      "pepper",
	"yoghurt":      "yogurt",
	"buttermilk":   "milk",
	"buns":         "bun",
	"tortillas":    "tortilla",
	"breads":       "bread",
	"eggs":         "egg",
	"onions":       "onion",
	"garlics":      "garlic",
	"berries":      "berry",
	"strawberries": "strawberry",
	"tomatos":      "tomato",
	"oliveoil":     "olive oil",
	"olive-oil":    "olive oil",
}
