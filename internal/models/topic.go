package models

import (
	"time"

	"gorm.io/gorm"
)

// Side 定義參與者立場的類型
type Side string

const (
	SideFor     Side = "for"     // 正方
	SideAgainst Side = "against" // 反方
)

// Valid 檢查立場是否為合法值
func (s Side) Valid() bool {
	return s == SideFor || s == SideAgainst
}

// Label 回傳立場的顯示名稱，用於標註辯論歷史中的發言者
func (s Side) Label() string {
	switch s {
	case SideFor:
		return "For"
	case SideAgainst:
		return "Against"
	default:
		return "Unknown"
	}
}

// Topic 表示一個辯論主題
// 刪除主題時會一併刪除其所有參與者和訊息
type Topic struct {
	ID           string        `gorm:"primaryKey" json:"id"` // UUID
	Title        string        `gorm:"not null" json:"title"`
	Creator      string        `gorm:"not null" json:"creator"` // 創建者用戶名，只有創建者能刪除主題
	CreatedAt    time.Time     `json:"-"`
	Participants []Participant `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
	Messages     []Message     `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}

// Participant 表示主題中的一位參與者
// 每個 (主題, 用戶名) 組合只會有一筆記錄，重複加入只更新立場
type Participant struct {
	gorm.Model
	TopicID  string `gorm:"index;not null" json:"topic_id"`
	Username string `gorm:"not null" json:"username"`
	Side     Side   `gorm:"type:varchar(10);not null" json:"side"`
}

// Message 表示一條已通過審核的辯論訊息
// 只增不改，內容一律是審核後的文明轉述，不是原始訊息
type Message struct {
	gorm.Model
	TopicID  string `gorm:"index;not null" json:"topic_id"`
	Username string `gorm:"not null" json:"username"`
	Content  string `gorm:"type:text;not null" json:"message"`
}
