package resume

import (
	"github.com/google/uuid"
)

// Content 表示存储在简历 Content(JSONB) 中的结构化数据。
type Content struct {
	PersonalInfo PersonalInfo     `json:"personal_info"`
	Summary      string           `json:"summary"`
	Education    []Education      `json:"education"`
	Experience   []WorkExperience `json:"experience"`
	Skills       []Skill          `json:"skills"`
}

// PersonalInfo 描述简历抬头的个人信息。
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	PhotoKey string `json:"photo_key,omitempty"`
}

// Education 表示一条教育经历。
type Education struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

// WorkExperience 表示一条工作经历。
type WorkExperience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// Skill 表示一项技能及熟练度。
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// EnsureItemIDs 为缺失 ID 的列表项分配一次性标识。
// 已有 ID 的项保持不变，保证跨编辑稳定，按 ID 的更新/删除不产生歧义。
func (c *Content) EnsureItemIDs() {
	for i := range c.Education {
		if c.Education[i].ID == "" {
			c.Education[i].ID = uuid.NewString()
		}
	}
	for i := range c.Experience {
		if c.Experience[i].ID == "" {
			c.Experience[i].ID = uuid.NewString()
		}
	}
	for i := range c.Skills {
		if c.Skills[i].ID == "" {
			c.Skills[i].ID = uuid.NewString()
		}
	}
}
