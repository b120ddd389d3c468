package shared

// shared types across the application
// 1st: the JSON catalog schema consumed by cmd/catalog-import
// 2nd: add more shared types as needed

// CourseCatalog represents the complete seed catalog structure
type CourseCatalog struct {
	Courses []CatalogCourse `json:"courses"`
}

// CatalogCourse is one course entry in the seed file
type CatalogCourse struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Level       string          `json:"level"`
	Modules     []CatalogModule `json:"modules"`
}

type CatalogModule struct {
	Title   string          `json:"title"`
	Lessons []CatalogLesson `json:"lessons"`
}

type CatalogLesson struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"` // seconds
	VideoURL string `json:"video_url"`
}
