package realtime

import (
	"log"

	config "github.com/manelteacher/spanish_classes/configs"
	"github.com/pusher/pusher-http-go/v5"
)

var pusherClient *pusher.Client

// InitPusher configures the Pusher client from the environment. A missing
// configuration leaves the publisher disabled; chat still works, only the
// external realtime fan-out is skipped.
func InitPusher() {
	appID := config.Config("PUSHER_APP_ID")
	key := config.Config("PUSHER_KEY")
	secret := config.Config("PUSHER_SECRET")
	cluster := config.Config("PUSHER_CLUSTER")

	if appID == "" || key == "" || secret == "" {
		log.Println("⚠️ Pusher not configured, realtime publishing disabled")
		pusherClient = nil
		return
	}

	pusherClient = &pusher.Client{
		AppID:   appID,
		Key:     key,
		Secret:  secret,
		Cluster: cluster,
		Secure:  true,
	}
	log.Println("✅ Pusher client initialized")
}

// Publish triggers an event on a Pusher channel. Best effort: failures are
// logged and never surfaced to the caller.
func Publish(channel, event string, payload interface{}) {
	if pusherClient == nil {
		return
	}
	if err := pusherClient.Trigger(channel, event, payload); err != nil {
		log.Printf("🔥 Pusher publish failed for %s/%s: %v", channel, event, err)
	}
}
