package repository

// TeamListFilter 查询团队成员列表的过滤条件
type TeamListFilter struct {
	OnlyActive bool
	Search     string
}

// ProjectListFilter 查询项目列表的过滤条件
type ProjectListFilter struct {
	Category string
	Status   string
	Featured *bool
	Search   string
	Limit    int
}

// TestimonialListFilter 查询评价列表的过滤条件
type TestimonialListFilter struct {
	Approved *bool
	Featured *bool
	Limit    int
}

// ContactListFilter 查询联系消息列表的过滤条件
type ContactListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// AdminUserListFilter 查询管理员列表的过滤条件
type AdminUserListFilter struct {
	Role     string
	IsActive *bool
	Search   string
}
