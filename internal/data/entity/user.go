package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Username     string   `db:"username"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	// MoneySpent accumulates the cost of every purchase, in currency minor
	// units. Updated only inside the purchase transaction.
	MoneySpent int `db:"money_spent"`
}
