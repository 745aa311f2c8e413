package model

// 配送先・連絡先（チェックアウトフォーム）
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`

	//電話番号（10桁）
	Phone string `json:"phone"`

	//番地など
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`

	//郵便番号（6桁）
	Pincode string `json:"pincode"`
}
