package repository

import "gorm.io/gorm"

// pageOffset 计算偏移量，非法页码按第一页处理
func pageOffset(page, pageSize int) int {
	if page < 1 || pageSize <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}

// applyPagination 应用分页参数，pageSize <= 0 表示不分页
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	return query.Limit(pageSize).Offset(pageOffset(page, pageSize))
}

// countAndPage 先统计总数再分页，返回分页后的查询
func countAndPage(query *gorm.DB, page, pageSize int) (*gorm.DB, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return applyPagination(query, page, pageSize), total, nil
}
