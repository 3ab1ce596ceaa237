package model

// Speaker 讲者表 — 对应 speakers
type Speaker struct {
	SpeakerID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"speaker_id"`
	Name        string `gorm:"type:varchar(200);not null"                     json:"name"`
	Email       string `gorm:"type:varchar(255)"                              json:"email"`
	Affiliation string `gorm:"type:varchar(255)"                              json:"affiliation"`
	Bio         string `gorm:"type:text"                                      json:"bio"`
	BaseModel
}

// TableName 指定表名
func (Speaker) TableName() string { return "speakers" }
