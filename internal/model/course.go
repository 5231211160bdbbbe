package model

// Course 课程及其章节/课时
// 课时的全局顺序 = 按 (section.Order, lesson.Order) 展平排序
// swagger:model Course
type Course struct {
	BaseModel
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Difficulty  string    `gorm:"size:20" json:"difficulty"` // Beginner, Intermediate, Advanced
	ImageURL    string    `gorm:"size:255" json:"imageUrl"`
	AuthorID    uint      `gorm:"index;type:bigint unsigned" json:"authorId"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Sections    []Section `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

type Section struct {
	BaseModel
	CourseID uint     `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title    string   `gorm:"size:255;not null" json:"title"`
	Order    int      `gorm:"column:sort_order;default:0" json:"order"`
	Lessons  []Lesson `gorm:"foreignKey:SectionID" json:"lessons,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}

type Lesson struct {
	BaseModel
	SectionID uint    `gorm:"index;type:bigint unsigned" json:"sectionId"`
	Title     string  `gorm:"size:255;not null" json:"title"`
	Content   string  `gorm:"type:text" json:"content"`
	VideoURL  string  `gorm:"size:255" json:"videoUrl,omitempty"`
	Duration  float64 `gorm:"default:0" json:"duration"` // 视频时长（秒），上传时探测
	Order     int     `gorm:"column:sort_order;default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
