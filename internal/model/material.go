package model

// Material is an opaque reference to an uploaded file. The storage backend
// itself lives behind an external collaborator; this core only tracks the key.
// swagger:model Material
type Material struct {
	BaseModel
	TeacherProfileID uint   `gorm:"index;type:bigint unsigned" json:"teacherProfileId"`
	Name             string `gorm:"size:255;not null" json:"name"`
	StorageKey       string `gorm:"size:64;uniqueIndex" json:"storageKey"`
	ContentType      string `gorm:"size:100" json:"contentType"`
	SizeBytes        int64  `gorm:"default:0" json:"sizeBytes"`
}

func (Material) TableName() string {
	return "materials"
}
