package model

// ギャラリー画像（静的カタログではSVG）
type GalleryItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
	Asset    Asset  `json:"asset"`
}

// お問い合わせ
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
