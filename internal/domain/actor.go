package domain

// Role роль пользователя маркетплейса
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
)

// Actor явно переданный исполнитель операции
// ID поставщика и клиента совпадают с ID пользователя
type Actor struct {
	UserID int64
	Role   Role
}

// IsSupplier возвращает true для поставщика
func (a Actor) IsSupplier() bool {
	return a.Role == RoleSupplier
}

// IsCustomer возвращает true для клиента
func (a Actor) IsCustomer() bool {
	return a.Role == RoleCustomer
}

// IsAdmin возвращает true для администратора
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// OwnsOffering проверяет, что исполнитель - поставщик-владелец предложения
func (a Actor) OwnsOffering(o *Offering) bool {
	return a.IsSupplier() && o != nil && o.SupplierID == a.UserID
}
