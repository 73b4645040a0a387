package views

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> block.
type PageMeta struct {
	SiteName    string
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // absolute og:image URL; empty omits image tags
	ImageWidth  int
	ImageHeight int
}

// DashboardPost is one row of the admin dashboard.
type DashboardPost struct {
	ID          string
	Title       string
	Description string
	PageURL     string
	ImagePath   string // site-relative path of the OG image
	Meta        PageMeta
}
