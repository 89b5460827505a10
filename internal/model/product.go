package model

import "time"

// Product belongs to exactly one user. Name and description are unique
// across all products (case-insensitive); the description rule applies
// only when one is given, so no index backs it and the service check is
// the sole enforcement. Quantity and price are never negative. Image
// references point at files stored by the image service.
type Product struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Category    Category   `gorm:"type:varchar(20);not null" json:"category"`
	Description string     `gorm:"type:varchar(500)" json:"description"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	Price       float64    `gorm:"not null" json:"price"`
	Images      []string   `gorm:"serializer:json;type:text" json:"images"`
	UserID      string     `gorm:"type:varchar(50);index" json:"userId"`
	User        *User      `gorm:"foreignKey:UserID" json:"-"`
	CreateDate  time.Time  `gorm:"column:create_date" json:"-"`
	UpdateDate  *time.Time `gorm:"column:update_date" json:"-"`
}

func (Product) TableName() string {
	return "tb_product"
}

func (Product) EntityName() string {
	return "product"
}

// ProductAudit is the per-revision snapshot of a product.
type ProductAudit struct {
	RevisionID  int64      `gorm:"column:rev;primaryKey"`
	RevType     int8       `gorm:"column:revtype"`
	ID          int64      `gorm:"primaryKey;column:id"`
	Name        string     `gorm:"type:varchar(100)"`
	Category    Category   `gorm:"type:varchar(20)"`
	Description string     `gorm:"type:varchar(500)"`
	Quantity    int
	Price       float64
	Images      []string   `gorm:"serializer:json;type:text"`
	UserID      string     `gorm:"type:varchar(50)"`
	CreateDate  time.Time  `gorm:"column:create_date"`
	UpdateDate  *time.Time `gorm:"column:update_date"`
}

func (ProductAudit) TableName() string {
	return "tb_audit_product"
}

func (p *Product) AuditSnapshot(revisionID int64, revType int8) any {
	return &ProductAudit{
		RevisionID:  revisionID,
		RevType:     revType,
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Images:      p.Images,
		UserID:      p.UserID,
		CreateDate:  p.CreateDate,
		UpdateDate:  p.UpdateDate,
	}
}

// ProductResponse is the API representation: the category travels as a
// plain string under "categories" and timestamps stay internal.
type ProductResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Categories  string   `json:"categories"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	Images      []string `json:"images"`
	Price       float64  `json:"price"`
	UserID      string   `json:"userId"`
}

func (p *Product) ToResponse() ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Categories:  p.Category.String(),
		Description: p.Description,
		Quantity:    p.Quantity,
		Images:      images,
		Price:       p.Price,
		UserID:      p.UserID,
	}
}
