package model

import "time"

// User is externally identified: the id comes with the request and is
// never generated here. Email, phone and cpf must each be unique across
// all users (case-insensitive); the unique indexes back up the service
// level pre-checks against concurrent writers.
type User struct {
	ID         string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name       string     `gorm:"type:varchar(50)" json:"name"`
	Email      string     `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone      string     `gorm:"type:varchar(30);uniqueIndex" json:"phone"`
	Cpf        string     `gorm:"type:varchar(20);uniqueIndex" json:"cpf"`
	CreateDate time.Time  `gorm:"column:create_date" json:"-"`
	UpdateDate *time.Time `gorm:"column:update_date" json:"-"`
}

func (User) TableName() string {
	return "tb_user"
}

func (User) EntityName() string {
	return "user"
}

// UserAudit is the per-revision snapshot of a user. Email, phone and
// cpf are deliberately not audited, so the snapshot keeps only the
// identifying and descriptive fields.
type UserAudit struct {
	RevisionID int64      `gorm:"column:rev;primaryKey"`
	RevType    int8       `gorm:"column:revtype"`
	ID         string     `gorm:"type:varchar(50);primaryKey;column:id"`
	Name       string     `gorm:"type:varchar(50)"`
	CreateDate time.Time  `gorm:"column:create_date"`
	UpdateDate *time.Time `gorm:"column:update_date"`
}

func (UserAudit) TableName() string {
	return "tb_audit_user"
}

func (u *User) AuditSnapshot(revisionID int64, revType int8) any {
	return &UserAudit{
		RevisionID: revisionID,
		RevType:    revType,
		ID:         u.ID,
		Name:       u.Name,
		CreateDate: u.CreateDate,
		UpdateDate: u.UpdateDate,
	}
}

// UserResponse is the API representation; timestamps stay internal.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Cpf   string `json:"cpf"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Cpf:   u.Cpf,
	}
}
