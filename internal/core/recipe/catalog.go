package recipe

// Recipe is a named dish and the ingredients it requires. Requirements are
// kept human-readable (plural forms allowed); they are normalized at match
// time, not at load time.
type Recipe struct {
	Name         string   `json:"name"`
	Requirements []string `json:"requirements"`
}

// Catalog is an insertion-ordered collection of recipes. It is read-only
// after construction; replacing it goes through Store.Swap.
type Catalog struct {
	recipes []Recipe
	index   map[string]int
}

// NewCatalog builds a catalog from recipes, keeping their order. A recipe
// whose name was already added replaces the earlier entry in place.
func NewCatalog(recipes []Recipe) *Catalog {
	c := &Catalog{
		recipes: make([]Recipe, 0, len(recipes)),
		index:   make(map[string]int, len(recipes)),
	}
	for _, r := range recipes {
		if i, ok := c.index[r.Name]; ok {
			c.recipes[i] = r
			continue
		}
		c.index[r.Name] = len(c.recipes)
		c.recipes = append(c.recipes, r)
	}
	return c
}

// Recipes returns the catalog's recipes in insertion order.
func (c *Catalog) Recipes() []Recipe {
	return c.recipes
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// position reports a recipe's insertion index, for deterministic tiebreaks.
func (c *Catalog) position(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return len(c.recipes)
}

// DefaultCatalog returns the built-in recipe catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Recipe{
		{Name: "Omelette", Requirements: []string{"eggs", "milk", "cheese", "butter"}},
		{Name: "Tomato Pasta", Requirements: []string{"tomato", "pasta", "olive oil", "garlic"}},
		{Name: "French Toast", Requirements: []string{"bread", "eggs", "milk", "syrup"}},
		{Name: "Salad", Requirements: []string{"lettuce", "tomato", "cucumber", "olive oil"}},
		{Name: "Grilled Cheese", Requirements: []string{"bread", "cheese", "butter"}},
		{Name: "Pancakes", Requirements: []string{"flour", "eggs", "milk", "syrup"}},
		{Name: "Smoothie", Requirements: []string{"banana", "milk", "yogurt", "berries"}},
		{Name: "Fried Rice", Requirements: []string{"rice", "eggs", "soy sauce", "carrot", "peas"}},
		{Name: "Tacos", Requirements: []string{"tortilla", "beef", "cheese", "lettuce", "tomato"}},
		{Name: "Guacamole", Requirements: []string{"avocado", "tomato", "onion", "lime"}},
		{Name: "Pizza", Requirements: []string{"dough", "tomato", "cheese", "olive oil"}},
		{Name: "Sandwich", Requirements: []string{"bread", "cheese", "lettuce", "tomato"}},
		{Name: "Chicken Soup", Requirements: []string{"chicken", "carrot", "celery", "onion"}},
		{Name: "Stir Fry", Requirements: []string{"chicken", "broccoli", "soy sauce", "garlic"}},
		{Name: "Quesadilla", Requirements: []string{"tortilla", "cheese", "chicken"}},
		{Name: "Mac and Cheese", Requirements: []string{"pasta", "cheese", "milk", "butter"}},
		{Name: "Curry", Requirements: []string{"chicken", "rice", "curry powder", "onion", "tomato"}},
		{Name: "Veggie Wrap", Requirements: []string{"tortilla", "lettuce", "cucumber", "tomato", "cheese"}},
		{Name: "Burger", Requirements: []string{"bun", "beef", "lettuce", "tomato", "cheese"}},
		{Name: "Scrambled Eggs", Requirements: []string{"eggs", "milk", "butter"}},
	})
}

// DefaultPantry returns the fixed pantry staples offered to the user.
func DefaultPantry() []string {
	return []string{
		"salt", "pepper", "olive oil", "soy sauce", "flour", "sugar",
		"butter", "garlic", "onion", "eggs", "milk",
	}
}
