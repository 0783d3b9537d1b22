package news

// Article is one extracted news entry.
//
// Link is always absolute; relative links are resolved against Origin during
// extraction. Image, PublishedTime and Category are nil when the page did not
// yield them — PublishedTime in particular carries no guaranteed date format.
// Articles have no identity beyond their position in the result sequence.
type Article struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Link          string  `json:"link"`
	Image         *string `json:"image"`
	Source        string  `json:"source"`
	PublishedTime *string `json:"publishedTime"`
	Category      *string `json:"category"`
}
