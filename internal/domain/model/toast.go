package model

import "time"

type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastWarning ToastKind = "warning"
)

// ParseToastKind は未知の値を info にする。
func ParseToastKind(s string) ToastKind {
	switch k := ToastKind(s); k {
	case ToastSuccess, ToastError, ToastWarning:
		return k
	default:
		return ToastInfo
	}
}

// 一定時間で消える通知
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      ToastKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
