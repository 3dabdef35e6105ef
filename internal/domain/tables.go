package domain

var Tables = []interface{}{
	// Inventory
	&Supplier{},
	&Category{},
	&Product{},
	// Accounts
	&User{},
	&Client{},
	&Admin{},
	&AdminDepartment{},
	&AdminPermission{},
}
