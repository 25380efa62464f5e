package models

import "time"

// SecurityQuestion 密保问题表（答案只存 SHA-256 哈希）
type SecurityQuestion struct {
	ID         uint      `gorm:"primarykey" json:"id"`                // 主键
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"` // 用户ID（一人一题）
	Question   string    `gorm:"not null" json:"question"`            // 问题文本
	AnswerHash string    `gorm:"not null" json:"-"`                   // 答案哈希（小写去空格后 SHA-256）
	CreatedAt  time.Time `json:"created_at"`                          // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                          // 更新时间
}

// TableName 指定表名
func (SecurityQuestion) TableName() string {
	return "security_questions"
}
