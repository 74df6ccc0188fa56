package models

const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
	RoleWaiter  = "waiter"
)

// Staff documents in the "staff" collection map an authenticated email to a
// back-office role. Account creation and password handling happen in the
// external auth service.
type Staff struct {
	ID    string `bson:"_id,omitempty" json:"id,omitempty"`
	Email string `bson:"email" json:"email" validate:"required,email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Role  string `bson:"role" json:"role" validate:"required,oneof=admin cashier waiter"`
}
