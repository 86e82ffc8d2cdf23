package models

import "time"

type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
	AlertInfo    AlertKind = "info"
)

const (
	ToastDuration  = 2 * time.Second
	BannerDuration = 4 * time.Second
)

// Alert is a transient notification: a toast or an inline banner.
type Alert struct {
	Kind           AlertKind `json:"kind"`
	Message        string    `json:"message"`
	DismissAfterMS int64     `json:"dismiss_after_ms"`
}

func Toast(kind AlertKind, message string) Alert {
	return Alert{Kind: kind, Message: message, DismissAfterMS: ToastDuration.Milliseconds()}
}

func Banner(kind AlertKind, message string) Alert {
	return Alert{Kind: kind, Message: message, DismissAfterMS: BannerDuration.Milliseconds()}
}
