package seed

// ChecklistEntry is one category of the starting shopping checklist.
type ChecklistEntry struct {
	Category string
	Items    []string
}

// DefaultChecklist is the stock list a new database is seeded with.
// Every item starts at quantity zero so the dashboard immediately
// flags it as needing to be bought.
var DefaultChecklist = []ChecklistEntry{
	{"Buns & Chips", []string{"Chips", "Buns"}},
	{"Veggies", []string{"Lettuce", "Tomatoes", "Onions", "Pickles", "Beetroot"}},
	{"Meats & Poultry", []string{"Chicken", "Beef", "Wagyu", "Eggs"}},
	{"Cheeses", []string{"Block", "Shredded Cheese", "Butter"}},
	{"Drinks", []string{"Coke", "Coke Zero", "Solo", "Fanta", "Water"}},
	{"Sauces & Condiments", []string{"Ketchup", "Chilli", "Mustard", "Mayonnaise", "BBQ sauce", "Special Sauce"}},
	{"Packaging & Delivery", []string{"Burger boxes", "Uber bags", "Plastic Bags"}},
	{"Cleaning Materials", []string{"Dish soap", "Hand Soap", "Floor Cleaning Liquid", "Paper towels", "Silver Scrubbers", "Lemon Juice", "Gloves", "Sprays"}},
	{"Stationery", []string{"Order pads", "Pens", "Markers", "Receipt rolls", "Staplers"}},
	{"Oils & Gas", []string{"Cooking oil", "Gas", "Small Gas"}},
	{"Salt & Spices", []string{"Chicken Salt", "Normal Salt", "Tasting Salt", "Ground Pepper"}},
}
