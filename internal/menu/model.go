package menu

// Item is one catalog entry of a restaurant's menu.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	IsVeg       bool     `json:"is_veg"`
	MealTypes   []string `json:"meal_types"`
}

// CartItem is the flattened presentation shape of one order line joined with
// its menu details, used by the current-orders endpoints.
type CartItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
}
