package domain

// Customer represents a customer of the service network
type Customer struct {
	ID           int64
	Name         string
	Phone        string
	LoyaltyScore int
}

// Vehicle represents a customer's vehicle
type Vehicle struct {
	ID         int64
	CustomerID int64
	VIN        string
	Model      string
}

// BelongsTo returns true if the vehicle is registered to the given customer
func (v *Vehicle) BelongsTo(customerID int64) bool {
	return v.CustomerID == customerID
}
