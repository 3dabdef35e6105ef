package domain

// Supplier vendor that provides products
type Supplier struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:150;not null;uniqueIndex" json:"name"`
	ContactPerson *string   `gorm:"size:100" json:"contact_person,omitempty"`
	Email         *string   `gorm:"size:100" json:"email,omitempty"`
	Phone         *string   `gorm:"size:20" json:"phone,omitempty"`
	Products      []Product `json:"-"`
}

// TableName Specify table name
func (Supplier) TableName() string {
	return "suppliers"
}

func (s Supplier) Identity() int64 { return s.ID }

type SupplierPatch struct {
	Name          *string `mapstructure:"name"`
	ContactPerson *string `mapstructure:"contact_person"`
	Email         *string `mapstructure:"email"`
	Phone         *string `mapstructure:"phone"`
}

func (p SupplierPatch) Apply(dst *Supplier) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.ContactPerson != nil {
		dst.ContactPerson = p.ContactPerson
	}
	if p.Email != nil {
		dst.Email = p.Email
	}
	if p.Phone != nil {
		dst.Phone = p.Phone
	}
}
