package model

// 上传文件归属实体类型（受限枚举，替代任意多态引用）
const (
	FileOwnerSeminar    = "seminar"
	FileOwnerSuggestion = "suggestion"
)

// UploadedFile 上传文件元数据表 — 对应 uploaded_files
// 磁盘文件以 storage_filename 存放于上传目录；DB 行与磁盘文件必须一起删除，
// 行不得比归属实体存活更久
type UploadedFile struct {
	FileID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"file_id"`
	EntityType      string `gorm:"type:varchar(20);not null"                      json:"entity_type"` // seminar | suggestion
	EntityID        string `gorm:"type:uuid;not null"                             json:"entity_id"`
	OriginalName    string `gorm:"type:varchar(255);not null"                     json:"original_name"`
	StorageFilename string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"storage_filename"`
	Size            int64  `gorm:"not null;default:0"                             json:"size"`
	ContentType     string `gorm:"type:varchar(100)"                              json:"content_type"`
	BaseModel
}

// TableName 指定表名
func (UploadedFile) TableName() string { return "uploaded_files" }
