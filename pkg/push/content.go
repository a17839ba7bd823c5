package push

import (
	"maps"

	"firebase.google.com/go/v4/messaging"
	"github.com/sideshow/apns2/payload"
	"github.com/tinywideclouds/go-platform/pkg/notification/v1"
)

// apsKey is the reserved APNs dictionary; custom data may not replace it.
const apsKey = "aps"

// PayloadOption adjusts the sections built by NewPayload.
type PayloadOption func(*payloadOptions)

type payloadOptions struct {
	icon string
}

// WithIcon sets the web push notification icon URL.
func WithIcon(url string) PayloadOption {
	return func(o *payloadOptions) {
		o.icon = url
	}
}

// NewPayload builds a Payload carrying content and data for APNs, FCM and web
// push. data is copied into each section. content.Sound is only used by APNs.
func NewPayload(content notification.NotificationContent, data map[string]string, opts ...PayloadOption) Payload {
	var options payloadOptions
	for _, opt := range opts {
		opt(&options)
	}

	// APNs: custom keys sit next to "aps" at the top level.
	apns := payload.NewPayload().
		AlertTitle(content.Title).
		AlertBody(content.Body)
	if content.Sound != "" {
		apns.Sound(content.Sound)
	}
	for k, v := range data {
		if k == apsKey {
			continue
		}
		apns.Custom(k, v)
	}

	fcm := map[string]any{
		"notification": &messaging.Notification{
			Title: content.Title,
			Body:  content.Body,
		},
	}

	web := map[string]any{
		"notification": &messaging.WebpushNotification{
			Title: content.Title,
			Body:  content.Body,
			Icon:  options.icon,
		},
	}

	if len(data) > 0 {
		fcm["data"] = maps.Clone(data)
		web["data"] = maps.Clone(data)
	}

	return Payload{
		"apns": apns,
		"fcm":  fcm,
		"web":  web,
	}
}
