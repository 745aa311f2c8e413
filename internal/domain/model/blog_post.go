package model

// ブログ記事
type BlogPost struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content,omitempty"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	ReadTime string   `json:"readTime"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"imageUrl,omitempty"`
}
