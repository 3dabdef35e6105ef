package domain

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Department admin department
type Department string

const (
	DepartmentIT         Department = "IT"
	DepartmentHR         Department = "HR"
	DepartmentFinance    Department = "Finance"
	DepartmentSales      Department = "Sales"
	DepartmentDesign     Department = "Design"
	DepartmentProduction Department = "Production"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentIT, DepartmentHR, DepartmentFinance, DepartmentSales, DepartmentDesign, DepartmentProduction:
		return true
	}
	return false
}

// Permission admin permission
type Permission string

const (
	PermissionRead   Permission = "read"
	PermissionWrite  Permission = "write"
	PermissionDelete Permission = "delete"
	PermissionAdmin  Permission = "admin"
)

func (p Permission) Valid() bool {
	switch p {
	case PermissionRead, PermissionWrite, PermissionDelete, PermissionAdmin:
		return true
	}
	return false
}

// User columns shared by clients and admins. Role tells which specialization owns the row.
type User struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username         string     `gorm:"size:50;not null;uniqueIndex:idx_users_username,where:delete_date IS NULL" json:"username"`
	PasswordHash     string     `gorm:"size:128" json:"-"`
	FirstName        *string    `gorm:"size:100" json:"first_name,omitempty"`
	LastName         *string    `gorm:"size:100" json:"last_name,omitempty"`
	Email            *string    `gorm:"size:100;uniqueIndex:idx_users_email,where:delete_date IS NULL" json:"email,omitempty"`
	PhoneNumber      *string    `gorm:"size:14" json:"phone_number,omitempty"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Role             Role       `gorm:"size:20;not null;index" json:"role"`
	Status           Status     `gorm:"size:20;not null" json:"status"`
	CreationDate     time.Time  `gorm:"autoCreateTime" json:"creation_date"`
	ModificationDate *time.Time `json:"modification_date,omitempty"`
	DeleteDate       *time.Time `gorm:"index" json:"delete_date,omitempty"` // Set when deactivated
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}

func (u User) Identity() int64 { return u.ID }

func (u *User) Touch(now time.Time) { u.ModificationDate = &now }

// FullName first and last name joined by a space
func (u User) FullName() string {
	var name string
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	return name
}

// UserPatch partial update of the shared user columns
type UserPatch struct {
	Username     *string    `mapstructure:"username"`
	FirstName    *string    `mapstructure:"first_name"`
	LastName     *string    `mapstructure:"last_name"`
	Email        *string    `mapstructure:"email"`
	PhoneNumber  *string    `mapstructure:"phone_number"`
	DateOfBirth  *time.Time `mapstructure:"date_of_birth"`
	Status       *Status    `mapstructure:"status"`
	PasswordHash *string    `mapstructure:"-"`
	DeleteDate   *time.Time `mapstructure:"-"`
}

func (p UserPatch) Apply(dst *User) {
	if p.Username != nil {
		dst.Username = *p.Username
	}
	if p.FirstName != nil {
		dst.FirstName = p.FirstName
	}
	if p.LastName != nil {
		dst.LastName = p.LastName
	}
	if p.Email != nil {
		dst.Email = p.Email
	}
	if p.PhoneNumber != nil {
		dst.PhoneNumber = p.PhoneNumber
	}
	if p.DateOfBirth != nil {
		dst.DateOfBirth = p.DateOfBirth
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.PasswordHash != nil {
		dst.PasswordHash = *p.PasswordHash
	}
	if p.DeleteDate != nil {
		dst.DeleteDate = p.DeleteDate
	}
}

// Client customer account
type Client struct {
	UserID          int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	User            User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	ShippingAddress *string `gorm:"size:255" json:"shipping_address,omitempty"`
	BillingAddress  *string `gorm:"size:255" json:"billing_address,omitempty"`
}

// TableName Specify table name
func (Client) TableName() string {
	return "clients"
}

func (c Client) Identity() int64 { return c.UserID }

func (c *Client) Touch(now time.Time) { c.User.Touch(now) }

func (c *Client) Base() any { return &c.User }

// ClientPatch partial client update
type ClientPatch struct {
	UserPatch       `mapstructure:",squash"`
	ShippingAddress *string `mapstructure:"shipping_address"`
	BillingAddress  *string `mapstructure:"billing_address"`
}

func (p ClientPatch) Apply(dst *Client) {
	p.UserPatch.Apply(&dst.User)
	if p.ShippingAddress != nil {
		dst.ShippingAddress = p.ShippingAddress
	}
	if p.BillingAddress != nil {
		dst.BillingAddress = p.BillingAddress
	}
}

// Admin back office operator
type Admin struct {
	UserID      int64             `gorm:"primaryKey;autoIncrement:false" json:"id"`
	User        User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Departments []AdminDepartment `gorm:"foreignKey:AdminID;references:UserID;constraint:OnDelete:CASCADE" json:"departments"`
	Permissions []AdminPermission `gorm:"foreignKey:AdminID;references:UserID;constraint:OnDelete:CASCADE" json:"permissions"`
}

// TableName Specify table name
func (Admin) TableName() string {
	return "admins"
}

func (a Admin) Identity() int64 { return a.UserID }

func (a *Admin) Touch(now time.Time) { a.User.Touch(now) }

func (a *Admin) Base() any { return &a.User }

// HasPermission reports whether the admin holds p, or the admin permission.
func (a Admin) HasPermission(p Permission) bool {
	for _, v := range a.Permissions {
		if v.Permission == p || v.Permission == PermissionAdmin {
			return true
		}
	}
	return false
}

type AdminPatch struct {
	UserPatch `mapstructure:",squash"`
}

func (p AdminPatch) Apply(dst *Admin) {
	p.UserPatch.Apply(&dst.User)
}

type AdminDepartment struct {
	AdminID    int64      `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Department Department `gorm:"primaryKey;size:20" json:"department"`
}

// TableName Specify table name
func (AdminDepartment) TableName() string {
	return "admin_departments"
}

type AdminPermission struct {
	AdminID    int64      `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Permission Permission `gorm:"primaryKey;size:20" json:"permission"`
}

// TableName Specify table name
func (AdminPermission) TableName() string {
	return "admin_permissions"
}
