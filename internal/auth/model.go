package auth

// Staff roles. Captains run tables; admins also change restaurant
// configuration.
const (
	RoleCaptain = "CAPTAIN"
	RoleAdmin   = "ADMIN"
)

// Staff is a restaurant staff account.
type Staff struct {
	ID           string
	Name         string
	Email        string
	Password     string
	Role         string
	RestaurantID string
}
