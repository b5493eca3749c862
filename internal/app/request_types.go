package app

// CreateWarehouseRequest is the input for creating a warehouse.
type CreateWarehouseRequest struct {
	OwnerID     string
	Name        string
	Description string
}

// CreateItemRequest is the input for creating an item. InitialQuantity
// seeds the ledger's CREATE_ITEM entry and must not be negative.
type CreateItemRequest struct {
	WarehouseID     string
	OwnerID         string
	Name            string
	Location        string
	InitialQuantity int64
	Comment         string
}

// RegisterUserRequest is the input for creating an account.
type RegisterUserRequest struct {
	Email       string
	DisplayName string
	Password    string
}
