package database

import "gorm.io/gorm"

// PageSize is the fixed number of records per list page.
const PageSize = 10

// Pagination describes one page of a result set. Pages are 1-based.
type Pagination struct {
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p Pagination) PrevPage() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

func (p Pagination) NextPage() int {
	if p.Page >= p.TotalPages {
		return p.TotalPages
	}
	return p.Page + 1
}

// Paginate counts the query's result set, clamps the requested page to the
// nearest valid one (out-of-range pages are not an error) and loads that
// page into dest, which must be a pointer to a slice.
func Paginate(query *gorm.DB, page int, dest any) (Pagination, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	p := Pagination{
		Page:       page,
		PageSize:   PageSize,
		Total:      total,
		TotalPages: totalPages,
	}

	err := query.Limit(PageSize).Offset((page - 1) * PageSize).Find(dest).Error
	return p, err
}
