package auth

// StaffRepository defines the data-access contract.
// Service depends ONLY on this interface.
type StaffRepository interface {
	Save(staff *Staff) error
	ExistsByEmail(email string) (bool, error)
	FindByEmail(email string) (*Staff, error)
}
