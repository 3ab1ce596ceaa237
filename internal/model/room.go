package model

// Room 场地表 — 对应 rooms
// 场地属于非关键元数据：删除场地不影响已关联讲座的存续（关联被置空）
type Room struct {
	RoomID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Building string `gorm:"type:varchar(100)"                              json:"building"`
	Capacity int    `gorm:"not null;default:0"                             json:"capacity"`
	Notes    string `gorm:"type:text"                                      json:"notes"`
	BaseModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }
