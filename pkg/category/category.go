package category

// defaultCategories is the fixed fallback set used whenever no user-edited
// list has been persisted. The labels match the ones the app shipped with.
var defaultCategories = []string{
	"식비",
	"카페/간식",
	"교통",
	"쇼핑",
	"주거/관리",
	"문화/여가",
	"여행",
	"교육",
	"의료/건강",
	"기타",
}

// DefaultCategories returns a fresh copy of the fallback label set, so
// callers can never mutate the canonical defaults.
func DefaultCategories() []string {
	categories := make([]string, len(defaultCategories))
	copy(categories, defaultCategories)
	return categories
}
