package services

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/PrayerJournal/initializers"
)

// Realtime fans postgres NOTIFY events out to per-group subscribers.
// Events carry only "groupID:table", enough to tell a client which list
// to refetch, never a data payload. Missed events are harmless because
// subscribers refetch the full list on every signal.

const realtimeChannel = "group_changes"

type realtimeHub struct {
	mu     sync.Mutex
	subs   map[int]map[int]chan string
	nextID int
}

var hub = &realtimeHub{subs: make(map[int]map[int]chan string)}

// InitRealtime starts the LISTEN loop. Without a DB_URL the hub still
// accepts subscribers; they just never receive events.
func InitRealtime() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Println("WARNING: DB_URL not set. Realtime events will not be delivered.")
		return
	}

	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Println("realtime listener event error:", err)
		}
	})
	if err := listener.Listen(realtimeChannel); err != nil {
		log.Println("Failed to LISTEN on", realtimeChannel, ":", err)
		return
	}

	go func() {
		for notification := range listener.Notify {
			if notification == nil {
				// nil marks a reconnect; subscribers refetch on the
				// next real event anyway.
				continue
			}
			hub.dispatch(notification.Extra)
		}
	}()

	log.Println("Realtime service listening on channel", realtimeChannel)
}

// NotifyGroupChange is called by handlers after any group-scoped write.
func NotifyGroupChange(groupID int, table string) {
	payload := fmt.Sprintf("%d:%s", groupID, table)
	_, err := initializers.SQLDB.Exec("SELECT pg_notify($1, $2)", realtimeChannel, payload)
	if err != nil {
		log.Println("pg_notify failed:", err)
	}
}

// SubscribeGroup registers for one group's change events. The returned
// cancel function must be called when the watcher goes away.
func SubscribeGroup(groupID int) (<-chan string, func()) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.subs[groupID] == nil {
		hub.subs[groupID] = make(map[int]chan string)
	}
	id := hub.nextID
	hub.nextID++

	ch := make(chan string, 8)
	hub.subs[groupID][id] = ch

	cancel := func() {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		if sub, ok := hub.subs[groupID][id]; ok {
			delete(hub.subs[groupID], id)
			close(sub)
		}
	}
	return ch, cancel
}

func (h *realtimeHub) dispatch(payload string) {
	var groupID int
	var table string
	if _, err := fmt.Sscanf(payload, "%d:%s", &groupID, &table); err != nil {
		log.Println("realtime: unparsable payload:", payload)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[groupID] {
		select {
		case ch <- payload:
		default:
			// Slow subscriber; dropping is fine, the next event or the
			// eventual refetch covers it.
		}
	}
}
