package dto

// Response 统一返回体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageQuery 通用分页参数
type PageQuery struct {
	Page int `form:"page,default=1" binding:"min=1"`
	Size int `form:"size,default=20" binding:"min=1,max=100"`
}

func (p *PageQuery) Offset() int {
	return (p.Page - 1) * p.Size
}
