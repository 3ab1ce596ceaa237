package model

// SeminarDetails 讲座后勤详情表 — 对应 seminar_details
// 与 Seminar 1:1 扩展，随讲座一同删除
type SeminarDetails struct {
	DetailID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"detail_id"`
	SeminarID      string `gorm:"type:uuid;not null;uniqueIndex"                 json:"seminar_id"`
	TravelInfo     string `gorm:"type:text"                                      json:"travel_info"`
	HotelInfo      string `gorm:"type:text"                                      json:"hotel_info"`
	PaymentInfo    string `gorm:"type:text"                                      json:"payment_info"`
	DocumentStatus string `gorm:"type:varchar(50)"                               json:"document_status"`
	DietaryNotes   string `gorm:"type:text"                                      json:"dietary_notes"`
	BaseModel
}

// TableName 指定表名
func (SeminarDetails) TableName() string { return "seminar_details" }
